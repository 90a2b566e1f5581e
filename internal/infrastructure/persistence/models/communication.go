package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/communication"
)

// CommunicationModel is the persistence model for the Communication domain
// entity. The composite index on (customer_id, occurred_at, id) backs the
// keyset pagination of customer timelines.
type CommunicationModel struct {
	AggregateModel
	CustomerID uuid.UUID               `gorm:"type:uuid;not null;index:idx_comm_customer_time,priority:1"`
	LoggedBy   uuid.UUID               `gorm:"type:uuid;not null"`
	Type       communication.Type      `gorm:"type:varchar(10);not null"`
	Direction  communication.Direction `gorm:"type:varchar(10);not null"`
	Summary    string                  `gorm:"type:text;not null"`
	OccurredAt time.Time               `gorm:"not null;index:idx_comm_customer_time,priority:2"`
}

// TableName returns the table name for GORM
func (CommunicationModel) TableName() string {
	return "communications"
}

// ToDomain converts the persistence model to a domain Communication entity.
func (m *CommunicationModel) ToDomain() *communication.Communication {
	return &communication.Communication{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		LoggedBy:          m.LoggedBy,
		Type:              m.Type,
		Direction:         m.Direction,
		Summary:           m.Summary,
		OccurredAt:        m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain Communication entity.
func (m *CommunicationModel) FromDomain(c *communication.Communication) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CustomerID = c.CustomerID
	m.LoggedBy = c.LoggedBy
	m.Type = c.Type
	m.Direction = c.Direction
	m.Summary = c.Summary
	m.OccurredAt = c.OccurredAt
}

// CommunicationModelFromDomain creates a new persistence model from a domain Communication entity.
func CommunicationModelFromDomain(c *communication.Communication) *CommunicationModel {
	m := &CommunicationModel{}
	m.FromDomain(c)
	return m
}
