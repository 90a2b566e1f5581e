package estimate

import (
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Aggregate type constant for Estimate
const AggregateTypeEstimate = "Estimate"

// Estimate domain event types
const (
	EventTypeEstimateCreated = "EstimateCreated"
	EventTypeEstimateSent    = "EstimateSent"
	EventTypeEstimateDecided = "EstimateDecided"
)

// EstimateCreatedEvent is published when an estimate is created
type EstimateCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Title  string `json:"title"`
}

// NewEstimateCreatedEvent creates a new EstimateCreatedEvent
func NewEstimateCreatedEvent(e *Estimate) *EstimateCreatedEvent {
	return &EstimateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateCreated, AggregateTypeEstimate, e.ID),
		Number:          e.Number,
		Title:           e.Title,
	}
}

// EstimateSentEvent is published when an estimate is sent to the customer
type EstimateSentEvent struct {
	shared.BaseDomainEvent
	Number    string `json:"number"`
	EmailedTo string `json:"emailed_to"`
	Total     string `json:"total"`
}

// NewEstimateSentEvent creates a new EstimateSentEvent
func NewEstimateSentEvent(e *Estimate) *EstimateSentEvent {
	return &EstimateSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateSent, AggregateTypeEstimate, e.ID),
		Number:          e.Number,
		EmailedTo:       e.EmailedTo,
		Total:           e.Total.StringFixed(2),
	}
}

// EstimateDecidedEvent is published when an estimate reaches a terminal status
type EstimateDecidedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Status Status `json:"status"`
}

// NewEstimateDecidedEvent creates a new EstimateDecidedEvent
func NewEstimateDecidedEvent(e *Estimate) *EstimateDecidedEvent {
	return &EstimateDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateDecided, AggregateTypeEstimate, e.ID),
		Number:          e.Number,
		Status:          e.Status,
	}
}
