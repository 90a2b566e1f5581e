package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/schedule"
)

// CreateEventRequest represents a request to schedule a calendar event
type CreateEventRequest struct {
	Title      string     `json:"title" binding:"required,max=300"`
	AssignedTo uuid.UUID  `json:"assigned_to" binding:"required"`
	StartsAt   time.Time  `json:"starts_at" binding:"required"`
	EndsAt     time.Time  `json:"ends_at" binding:"required"`
	CustomerID *uuid.UUID `json:"customer_id"`
	PropertyID *uuid.UUID `json:"property_id"`
	Notes      string     `json:"notes"`
}

// UpdateEventRequest updates an event. Version is the optimistic-locking
// token from the last read; a stale version yields CONFLICT.
type UpdateEventRequest struct {
	Version    int        `json:"version" binding:"required,min=1"`
	Title      *string    `json:"title" binding:"omitempty,max=300"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	CustomerID *uuid.UUID `json:"customer_id"`
	PropertyID *uuid.UUID `json:"property_id"`
	Notes      *string    `json:"notes"`
}

// TransitionEventRequest completes or cancels an event at a known version
type TransitionEventRequest struct {
	Version int `json:"version" binding:"required,min=1"`
}

// EventListFilter narrows calendar listings
type EventListFilter struct {
	From       string `form:"from"`
	To         string `form:"to"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// EventResponse represents a calendar event in API responses
type EventResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	AssignedTo uuid.UUID  `json:"assigned_to"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     time.Time  `json:"ends_at"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Version    int        `json:"version"`
}

// ToEventResponse converts a domain event to an API response
func ToEventResponse(event *schedule.Event) *EventResponse {
	return &EventResponse{
		ID:         event.ID,
		Title:      event.Title,
		CustomerID: event.CustomerID,
		PropertyID: event.PropertyID,
		AssignedTo: event.AssignedTo,
		StartsAt:   event.StartsAt,
		EndsAt:     event.EndsAt,
		Status:     string(event.Status),
		Notes:      event.Notes,
		CreatedAt:  event.CreatedAt,
		UpdatedAt:  event.UpdatedAt,
		Version:    event.Version,
	}
}
