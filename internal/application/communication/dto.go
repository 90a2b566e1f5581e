package communication

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/communication"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// LogCommunicationRequest represents a request to log a customer interaction
type LogCommunicationRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Type       string    `json:"type" binding:"required,oneof=call text email"`
	Direction  string    `json:"direction" binding:"required,oneof=inbound outbound"`
	Summary    string    `json:"summary" binding:"required,max=5000"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UpdateCommunicationRequest revises a logged interaction
type UpdateCommunicationRequest struct {
	Type       string    `json:"type" binding:"required,oneof=call text email"`
	Direction  string    `json:"direction" binding:"required,oneof=inbound outbound"`
	Summary    string    `json:"summary" binding:"required,max=5000"`
	OccurredAt time.Time `json:"occurred_at" binding:"required"`
}

// ListCommunicationsRequest narrows a customer's timeline. Cursor is the
// opaque token from a previous page.
type ListCommunicationsRequest struct {
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Type      string `form:"type" binding:"omitempty,oneof=call text email"`
	Direction string `form:"direction" binding:"omitempty,oneof=inbound outbound"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// CommunicationResponse represents a communication in API responses
type CommunicationResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	LoggedBy   uuid.UUID `json:"logged_by"`
	Type       string    `json:"type"`
	Direction  string    `json:"direction"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// SearchHitResponse is one row of the global communication search
type SearchHitResponse struct {
	Communication *CommunicationResponse `json:"communication"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
}

// TimelinePage is one cursor-paginated page of a customer's timeline
type TimelinePage = shared.CursorPage[*CommunicationResponse]

// ToCommunicationResponse converts a domain communication to an API response
func ToCommunicationResponse(comm *communication.Communication) *CommunicationResponse {
	return &CommunicationResponse{
		ID:         comm.ID,
		CustomerID: comm.CustomerID,
		LoggedBy:   comm.LoggedBy,
		Type:       string(comm.Type),
		Direction:  string(comm.Direction),
		Summary:    comm.Summary,
		OccurredAt: comm.OccurredAt,
		CreatedAt:  comm.CreatedAt,
		UpdatedAt:  comm.UpdatedAt,
		Version:    comm.Version,
	}
}
