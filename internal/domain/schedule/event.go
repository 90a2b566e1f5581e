package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// EventStatus represents the status of a calendar event
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid checks if the status is a known EventStatus
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusScheduled, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a scheduled visit or appointment on the calendar.
// The aggregate Version doubles as the optimistic-locking token clients must
// echo back on updates; the repository refuses writes with a stale version.
type Event struct {
	shared.BaseAggregateRoot
	Title      string
	CustomerID *uuid.UUID
	PropertyID *uuid.UUID
	AssignedTo uuid.UUID
	StartsAt   time.Time
	EndsAt     time.Time
	Status     EventStatus
	Notes      string
}

// NewEvent creates a scheduled calendar event
func NewEvent(title string, assignedTo uuid.UUID, startsAt, endsAt time.Time) (*Event, error) {
	if err := validateEventTitle(title); err != nil {
		return nil, err
	}
	if assignedTo == uuid.Nil {
		return nil, shared.NewValidationError("assigned admin cannot be empty")
	}
	if err := validateTimeRange(startsAt, endsAt); err != nil {
		return nil, err
	}

	return &Event{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		AssignedTo:        assignedTo,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		Status:            EventStatusScheduled,
	}, nil
}

// SetCustomer links the event to a customer and optionally a property
func (e *Event) SetCustomer(customerID, propertyID *uuid.UUID) {
	e.CustomerID = customerID
	e.PropertyID = propertyID
	e.Touch()
}

// SetNotes replaces the event notes
func (e *Event) SetNotes(notes string) {
	e.Notes = notes
	e.Touch()
}

// Reschedule updates title and time range. Allowed only while scheduled.
func (e *Event) Reschedule(title string, startsAt, endsAt time.Time) error {
	if e.Status != EventStatusScheduled {
		return shared.NewConflictError("cannot modify a %s event", e.Status)
	}
	if err := validateEventTitle(title); err != nil {
		return err
	}
	if err := validateTimeRange(startsAt, endsAt); err != nil {
		return err
	}

	e.Title = strings.TrimSpace(title)
	e.StartsAt = startsAt
	e.EndsAt = endsAt
	e.Touch()

	return nil
}

// Reassign moves the event to another admin
func (e *Event) Reassign(adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		return shared.NewValidationError("assigned admin cannot be empty")
	}
	if e.Status != EventStatusScheduled {
		return shared.NewConflictError("cannot modify a %s event", e.Status)
	}

	e.AssignedTo = adminID
	e.Touch()

	return nil
}

// Complete marks the visit as done
func (e *Event) Complete() error {
	if e.Status != EventStatusScheduled {
		return shared.NewConflictError("cannot complete a %s event", e.Status)
	}

	e.Status = EventStatusCompleted
	e.Touch()

	return nil
}

// Cancel calls the visit off
func (e *Event) Cancel() error {
	if e.Status != EventStatusScheduled {
		return shared.NewConflictError("cannot cancel a %s event", e.Status)
	}

	e.Status = EventStatusCancelled
	e.Touch()

	return nil
}

func validateEventTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("title cannot be empty")
	}
	if len(title) > 300 {
		return shared.NewValidationError("title cannot exceed 300 characters")
	}
	return nil
}

func validateTimeRange(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return shared.NewValidationError("starts_at and ends_at are required")
	}
	if !endsAt.After(startsAt) {
		return shared.NewValidationError("ends_at must be after starts_at")
	}
	return nil
}
