package communication

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Type is the communication channel
type Type string

const (
	TypeCall  Type = "call"
	TypeText  Type = "text"
	TypeEmail Type = "email"
)

// Direction tells who initiated the communication
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Communication is one logged interaction with a customer
type Communication struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	LoggedBy   uuid.UUID
	Type       Type
	Direction  Direction
	Summary    string
	OccurredAt time.Time
}

// NewCommunication logs an interaction. A zero occurredAt means "now";
// future timestamps are rejected.
func NewCommunication(customerID, loggedBy uuid.UUID, commType Type, direction Direction, summary string, occurredAt time.Time) (*Communication, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id cannot be empty")
	}
	if err := validateType(commType); err != nil {
		return nil, err
	}
	if err := validateDirection(direction); err != nil {
		return nil, err
	}
	if err := validateSummary(summary); err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	if occurredAt.After(time.Now().Add(time.Minute)) {
		return nil, shared.NewValidationError("occurred_at cannot be in the future")
	}

	return &Communication{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		LoggedBy:          loggedBy,
		Type:              commType,
		Direction:         direction,
		Summary:           strings.TrimSpace(summary),
		OccurredAt:        occurredAt,
	}, nil
}

// Update revises the logged details
func (c *Communication) Update(commType Type, direction Direction, summary string, occurredAt time.Time) error {
	if err := validateType(commType); err != nil {
		return err
	}
	if err := validateDirection(direction); err != nil {
		return err
	}
	if err := validateSummary(summary); err != nil {
		return err
	}
	if occurredAt.IsZero() {
		return shared.NewValidationError("occurred_at cannot be empty")
	}
	if occurredAt.After(time.Now().Add(time.Minute)) {
		return shared.NewValidationError("occurred_at cannot be in the future")
	}

	c.Type = commType
	c.Direction = direction
	c.Summary = strings.TrimSpace(summary)
	c.OccurredAt = occurredAt
	c.Touch()
	c.IncrementVersion()

	return nil
}

func validateType(t Type) error {
	switch t {
	case TypeCall, TypeText, TypeEmail:
		return nil
	}
	return shared.NewValidationError("invalid communication type: %s", t)
}

func validateDirection(d Direction) error {
	switch d {
	case DirectionInbound, DirectionOutbound:
		return nil
	}
	return shared.NewValidationError("invalid communication direction: %s", d)
}

func validateSummary(summary string) error {
	if strings.TrimSpace(summary) == "" {
		return shared.NewValidationError("summary cannot be empty")
	}
	if len(summary) > 5000 {
		return shared.NewValidationError("summary cannot exceed 5000 characters")
	}
	return nil
}
