package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/identity"
	"github.com/poolcrm/backend/internal/domain/schedule"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Service handles the service calendar
type Service struct {
	eventRepo    schedule.Repository
	adminRepo    identity.AdminRepository
	customerRepo crm.CustomerRepository
	propertyRepo crm.PropertyRepository
	logger       *zap.Logger
}

// NewService creates a new calendar service
func NewService(
	eventRepo schedule.Repository,
	adminRepo identity.AdminRepository,
	customerRepo crm.CustomerRepository,
	propertyRepo crm.PropertyRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		eventRepo:    eventRepo,
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// CreateEvent schedules a calendar event
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	if _, err := s.adminRepo.FindByID(ctx, req.AssignedTo); err != nil {
		return nil, shared.NewNotFoundError("assigned admin")
	}
	if err := s.checkCustomerAndProperty(ctx, req.CustomerID, req.PropertyID); err != nil {
		return nil, err
	}

	event, err := schedule.NewEvent(req.Title, req.AssignedTo, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		event.SetCustomer(req.CustomerID, req.PropertyID)
	}
	if req.Notes != "" {
		event.SetNotes(req.Notes)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to create event", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create event")
	}

	s.logger.Info("Event scheduled",
		zap.String("event_id", event.ID.String()),
		zap.String("assigned_to", event.AssignedTo.String()),
		zap.Time("starts_at", event.StartsAt))

	return ToEventResponse(event), nil
}

// GetEvent returns one event by ID
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("event")
	}
	return ToEventResponse(event), nil
}

// ListEvents returns events matching the filter, ordered by start time
func (s *Service) ListEvents(ctx context.Context, filter EventListFilter) ([]*EventResponse, error) {
	domainFilter, err := buildEventFilter(filter)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("Failed to list events", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list events")
	}

	items := make([]*EventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, ToEventResponse(event))
	}
	return items, nil
}

// UpdateEvent applies changes at the version the client last saw. A write
// that lost a race with another admin yields CONFLICT; the client re-reads
// and retries.
func (s *Service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("event")
	}
	if event.Version != req.Version {
		return nil, shared.ErrConflict
	}

	if req.Title != nil || req.StartsAt != nil || req.EndsAt != nil {
		title := event.Title
		startsAt := event.StartsAt
		endsAt := event.EndsAt
		if req.Title != nil {
			title = *req.Title
		}
		if req.StartsAt != nil {
			startsAt = *req.StartsAt
		}
		if req.EndsAt != nil {
			endsAt = *req.EndsAt
		}
		if err := event.Reschedule(title, startsAt, endsAt); err != nil {
			return nil, err
		}
	}

	if req.AssignedTo != nil {
		if _, err := s.adminRepo.FindByID(ctx, *req.AssignedTo); err != nil {
			return nil, shared.NewNotFoundError("assigned admin")
		}
		if err := event.Reassign(*req.AssignedTo); err != nil {
			return nil, err
		}
	}

	if req.CustomerID != nil || req.PropertyID != nil {
		customerID := event.CustomerID
		propertyID := event.PropertyID
		if req.CustomerID != nil {
			customerID = req.CustomerID
		}
		if req.PropertyID != nil {
			propertyID = req.PropertyID
		}
		if err := s.checkCustomerAndProperty(ctx, customerID, propertyID); err != nil {
			return nil, err
		}
		event.SetCustomer(customerID, propertyID)
	}

	if req.Notes != nil {
		event.SetNotes(*req.Notes)
	}

	if err := s.eventRepo.UpdateWithVersion(ctx, event, req.Version); err != nil {
		return nil, err
	}

	return ToEventResponse(event), nil
}

// CompleteEvent marks the visit as done at a known version
func (s *Service) CompleteEvent(ctx context.Context, id uuid.UUID, req TransitionEventRequest) (*EventResponse, error) {
	return s.transition(ctx, id, req.Version, (*schedule.Event).Complete)
}

// CancelEvent calls the visit off at a known version
func (s *Service) CancelEvent(ctx context.Context, id uuid.UUID, req TransitionEventRequest) (*EventResponse, error) {
	return s.transition(ctx, id, req.Version, (*schedule.Event).Cancel)
}

// DeleteEvent removes an event from the calendar
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return shared.NewNotFoundError("event")
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete event", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete event")
	}

	s.logger.Info("Event deleted", zap.String("event_id", id.String()))

	return nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, version int, mutate func(*schedule.Event) error) (*EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("event")
	}
	if event.Version != version {
		return nil, shared.ErrConflict
	}

	if err := mutate(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.UpdateWithVersion(ctx, event, version); err != nil {
		return nil, err
	}

	return ToEventResponse(event), nil
}

func (s *Service) checkCustomerAndProperty(ctx context.Context, customerID, propertyID *uuid.UUID) error {
	if propertyID != nil && customerID == nil {
		return shared.NewValidationError("property requires a customer")
	}
	if customerID == nil {
		return nil
	}

	if _, err := s.customerRepo.FindByID(ctx, *customerID); err != nil {
		return shared.NewNotFoundError("customer")
	}
	if propertyID != nil {
		property, err := s.propertyRepo.FindByID(ctx, *propertyID)
		if err != nil {
			return shared.NewNotFoundError("property")
		}
		if property.CustomerID != *customerID {
			return shared.NewValidationError("property does not belong to this customer")
		}
	}
	return nil
}

func buildEventFilter(filter EventListFilter) (schedule.EventFilter, error) {
	var domainFilter schedule.EventFilter

	if filter.From != "" {
		from, err := time.Parse(time.RFC3339, filter.From)
		if err != nil {
			return domainFilter, shared.NewValidationError("from must be RFC 3339")
		}
		domainFilter.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(time.RFC3339, filter.To)
		if err != nil {
			return domainFilter, shared.NewValidationError("to must be RFC 3339")
		}
		domainFilter.To = &to
	}
	if filter.AssignedTo != "" {
		id, err := uuid.Parse(filter.AssignedTo)
		if err != nil {
			return domainFilter, shared.NewValidationError("assigned_to must be a UUID")
		}
		domainFilter.AssignedTo = &id
	}
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return domainFilter, shared.NewValidationError("customer_id must be a UUID")
		}
		domainFilter.CustomerID = &id
	}
	if filter.Status != "" {
		status := schedule.EventStatus(filter.Status)
		domainFilter.Status = &status
	}

	return domainFilter, nil
}
