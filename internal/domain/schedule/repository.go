package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for calendar event persistence
type Repository interface {
	// Create inserts a new event
	Create(ctx context.Context, event *Event) error

	// UpdateWithVersion writes the event only if the stored row still has
	// expectedVersion, bumping the version by one. A stale version yields
	// CONFLICT; a missing row yields NOT_FOUND. The two are told apart by
	// a follow-up read.
	UpdateWithVersion(ctx context.Context, event *Event, expectedVersion int) error

	// FindByID finds an event by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindAll returns events matching the filter, ordered by starts_at
	FindAll(ctx context.Context, filter EventFilter) ([]*Event, error)

	// Delete removes an event
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventFilter narrows calendar listings
type EventFilter struct {
	// Time range: events overlapping [From, To)
	From *time.Time
	To   *time.Time

	// Filter by assigned admin
	AssignedTo *uuid.UUID

	// Filter by customer
	CustomerID *uuid.UUID

	// Filter by status
	Status *EventStatus
}
