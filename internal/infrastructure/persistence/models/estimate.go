package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/poolcrm/backend/internal/domain/estimate"
)

// EstimateModel is the persistence model for the Estimate aggregate root.
// Line items live in their own table and are loaded alongside the estimate.
type EstimateModel struct {
	AggregateModel
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyID *uuid.UUID      `gorm:"type:uuid;index"`
	Number     string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Title      string          `gorm:"type:varchar(200);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxRate    decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	Tax        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status     estimate.Status `gorm:"type:varchar(20);not null;default:'draft';index"`
	SentAt     *time.Time
	DecidedAt  *time.Time
	EmailedTo  string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (EstimateModel) TableName() string {
	return "estimates"
}

// ToDomain converts the persistence model to a domain Estimate entity.
// Items must be attached separately by the repository.
func (m *EstimateModel) ToDomain() *estimate.Estimate {
	return &estimate.Estimate{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		PropertyID:        m.PropertyID,
		Number:            m.Number,
		Title:             m.Title,
		Subtotal:          m.Subtotal,
		TaxRate:           m.TaxRate,
		Tax:               m.Tax,
		Total:             m.Total,
		Status:            m.Status,
		SentAt:            m.SentAt,
		DecidedAt:         m.DecidedAt,
		EmailedTo:         m.EmailedTo,
	}
}

// FromDomain populates the persistence model from a domain Estimate entity.
func (m *EstimateModel) FromDomain(e *estimate.Estimate) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.CustomerID = e.CustomerID
	m.PropertyID = e.PropertyID
	m.Number = e.Number
	m.Title = e.Title
	m.Subtotal = e.Subtotal
	m.TaxRate = e.TaxRate
	m.Tax = e.Tax
	m.Total = e.Total
	m.Status = e.Status
	m.SentAt = e.SentAt
	m.DecidedAt = e.DecidedAt
	m.EmailedTo = e.EmailedTo
}

// EstimateModelFromDomain creates a new persistence model from a domain Estimate entity.
func EstimateModelFromDomain(e *estimate.Estimate) *EstimateModel {
	m := &EstimateModel{}
	m.FromDomain(e)
	return m
}

// EstimateItemModel is the persistence model for an estimate line item.
type EstimateItemModel struct {
	BaseModel
	EstimateID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (EstimateItemModel) TableName() string {
	return "estimate_items"
}

// ToDomain converts the persistence model to a domain estimate Item.
func (m *EstimateItemModel) ToDomain() estimate.Item {
	return estimate.Item{
		ID:          m.ID,
		EstimateID:  m.EstimateID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		SortOrder:   m.SortOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain estimate Item.
func (m *EstimateItemModel) FromDomain(i estimate.Item) {
	m.ID = i.ID
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
	m.EstimateID = i.EstimateID
	m.Description = i.Description
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Amount = i.Amount
	m.SortOrder = i.SortOrder
}

// EstimateItemModelFromDomain creates a new persistence model from a domain estimate Item.
func EstimateItemModelFromDomain(i estimate.Item) *EstimateItemModel {
	m := &EstimateItemModel{}
	m.FromDomain(i)
	return m
}
