package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/schedule"
)

// CalendarEventModel is the persistence model for the calendar Event entity.
// The version column is the optimistic-locking token checked on updates.
type CalendarEventModel struct {
	AggregateModel
	Title      string               `gorm:"type:varchar(200);not null"`
	CustomerID *uuid.UUID           `gorm:"type:uuid;index"`
	PropertyID *uuid.UUID           `gorm:"type:uuid"`
	AssignedTo uuid.UUID            `gorm:"type:uuid;not null;index"`
	StartsAt   time.Time            `gorm:"not null;index"`
	EndsAt     time.Time            `gorm:"not null"`
	Status     schedule.EventStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	Notes      string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CalendarEventModel) TableName() string {
	return "calendar_events"
}

// ToDomain converts the persistence model to a domain Event entity.
func (m *CalendarEventModel) ToDomain() *schedule.Event {
	return &schedule.Event{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		CustomerID:        m.CustomerID,
		PropertyID:        m.PropertyID,
		AssignedTo:        m.AssignedTo,
		StartsAt:          m.StartsAt,
		EndsAt:            m.EndsAt,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Event entity.
func (m *CalendarEventModel) FromDomain(e *schedule.Event) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Title = e.Title
	m.CustomerID = e.CustomerID
	m.PropertyID = e.PropertyID
	m.AssignedTo = e.AssignedTo
	m.StartsAt = e.StartsAt
	m.EndsAt = e.EndsAt
	m.Status = e.Status
	m.Notes = e.Notes
}

// CalendarEventModelFromDomain creates a new persistence model from a domain Event entity.
func CalendarEventModelFromDomain(e *schedule.Event) *CalendarEventModel {
	m := &CalendarEventModel{}
	m.FromDomain(e)
	return m
}
