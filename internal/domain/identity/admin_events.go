package identity

import (
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Aggregate type constant for Admin
const AggregateTypeAdmin = "Admin"

// Admin domain event types
const (
	EventTypeAdminCreated     = "AdminCreated"
	EventTypeAdminDeactivated = "AdminDeactivated"
)

// AdminCreatedEvent is published when an admin is created
type AdminCreatedEvent struct {
	shared.BaseDomainEvent
	Email string    `json:"email"`
	Role  AdminRole `json:"role"`
}

// NewAdminCreatedEvent creates a new AdminCreatedEvent
func NewAdminCreatedEvent(admin *Admin) *AdminCreatedEvent {
	return &AdminCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdminCreated, AggregateTypeAdmin, admin.ID),
		Email:           admin.Email,
		Role:            admin.Role,
	}
}

// AdminDeactivatedEvent is published when an admin is deactivated
type AdminDeactivatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewAdminDeactivatedEvent creates a new AdminDeactivatedEvent
func NewAdminDeactivatedEvent(admin *Admin) *AdminDeactivatedEvent {
	return &AdminDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdminDeactivated, AggregateTypeAdmin, admin.ID),
		Email:           admin.Email,
	}
}
