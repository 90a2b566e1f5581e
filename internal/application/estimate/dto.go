package estimate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/poolcrm/backend/internal/domain/estimate"
)

// =============================================================================
// Requests
// =============================================================================

// ItemInput is one line item in a create or item request
type ItemInput struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateEstimateRequest represents a request to create a draft estimate
type CreateEstimateRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	PropertyID *uuid.UUID      `json:"property_id"`
	Title      string          `json:"title" binding:"required,max=300"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Items      []ItemInput     `json:"items" binding:"omitempty,dive"`
}

// UpdateEstimateRequest updates a draft estimate's header fields
type UpdateEstimateRequest struct {
	Title      string          `json:"title" binding:"required,max=300"`
	PropertyID *uuid.UUID      `json:"property_id"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
}

// SendEstimateRequest sends the estimate by email. Recipient defaults to the
// customer's email when empty.
type SendEstimateRequest struct {
	Recipient string `json:"recipient" binding:"omitempty,email,max=200"`
}

// ListFilter represents filter options for the estimate list
type ListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft sent internal_final converted declined"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =============================================================================
// Responses
// =============================================================================

// ItemResponse represents a line item in API responses
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sort_order"`
}

// EstimateResponse represents an estimate in API responses
type EstimateResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	PropertyID *uuid.UUID      `json:"property_id,omitempty"`
	Number     string          `json:"number"`
	Title      string          `json:"title"`
	Items      []ItemResponse  `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	SentAt     *time.Time      `json:"sent_at,omitempty"`
	DecidedAt  *time.Time      `json:"decided_at,omitempty"`
	EmailedTo  string          `json:"emailed_to,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// SendResult reports the outcome of sending an estimate. The status
// transition sticks even when email delivery fails; EmailError carries the
// delivery failure for the UI.
type SendResult struct {
	Estimate       *EstimateResponse `json:"estimate"`
	EmailDelivered bool              `json:"email_delivered"`
	EmailID        string            `json:"email_id,omitempty"`
	EmailError     string            `json:"email_error,omitempty"`
}

// ListResult is a paginated estimate listing
type ListResult struct {
	Items    []*EstimateResponse `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// ToEstimateResponse converts a domain estimate to an API response
func ToEstimateResponse(est *estimate.Estimate) *EstimateResponse {
	items := make([]ItemResponse, 0, len(est.Items))
	for i := range est.Items {
		item := &est.Items[i]
		items = append(items, ItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			SortOrder:   item.SortOrder,
		})
	}

	return &EstimateResponse{
		ID:         est.ID,
		CustomerID: est.CustomerID,
		PropertyID: est.PropertyID,
		Number:     est.Number,
		Title:      est.Title,
		Items:      items,
		Subtotal:   est.Subtotal,
		TaxRate:    est.TaxRate,
		Tax:        est.Tax,
		Total:      est.Total,
		Status:     string(est.Status),
		SentAt:     est.SentAt,
		DecidedAt:  est.DecidedAt,
		EmailedTo:  est.EmailedTo,
		CreatedAt:  est.CreatedAt,
		UpdatedAt:  est.UpdatedAt,
		Version:    est.Version,
	}
}
