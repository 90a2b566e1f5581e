package estimate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/estimate"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/mail"
	"github.com/poolcrm/backend/internal/infrastructure/telemetry"
)

// Service handles estimate operations
type Service struct {
	estimateRepo estimate.Repository
	customerRepo crm.CustomerRepository
	propertyRepo crm.PropertyRepository
	mailer       mail.Mailer
	metrics      *telemetry.CRMMetrics
	logger       *zap.Logger
}

// NewService creates a new estimate service. metrics may be nil when
// telemetry is disabled.
func NewService(
	estimateRepo estimate.Repository,
	customerRepo crm.CustomerRepository,
	propertyRepo crm.PropertyRepository,
	mailer mail.Mailer,
	metrics *telemetry.CRMMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		estimateRepo: estimateRepo,
		customerRepo: customerRepo,
		propertyRepo: propertyRepo,
		mailer:       mailer,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create creates a draft estimate with an allocated number and optional
// initial line items
func (s *Service) Create(ctx context.Context, req CreateEstimateRequest) (*EstimateResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}
	if err := s.checkProperty(ctx, req.CustomerID, req.PropertyID); err != nil {
		return nil, err
	}

	number, err := s.estimateRepo.NextNumber(ctx)
	if err != nil {
		s.logger.Error("Failed to allocate estimate number", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create estimate")
	}

	est, err := estimate.NewEstimate(req.CustomerID, req.PropertyID, number, req.Title, req.TaxRate)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := est.AddItem(item.Description, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		// A lost race on the number's unique index comes back as a
		// conflict the caller can retry.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create estimate")
	}

	if s.metrics != nil {
		s.metrics.RecordEstimateCreated(ctx)
	}

	s.logger.Info("Estimate created",
		zap.String("estimate_id", est.ID.String()),
		zap.String("number", est.Number),
		zap.String("customer_id", req.CustomerID.String()))

	return ToEstimateResponse(est), nil
}

// Get returns one estimate with its items
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}
	return ToEstimateResponse(est), nil
}

// GetByNumber returns one estimate by its unique number
func (s *Service) GetByNumber(ctx context.Context, number string) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}
	return ToEstimateResponse(est), nil
}

// List returns estimates matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	domainFilter := estimate.NewFilter()
	domainFilter.CustomerID = filter.CustomerID
	if filter.Status != "" {
		status := estimate.Status(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	estimates, total, err := s.estimateRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("Failed to list estimates", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list estimates")
	}

	items := make([]*EstimateResponse, 0, len(estimates))
	for _, est := range estimates {
		items = append(items, ToEstimateResponse(est))
	}

	return &ListResult{
		Items:    items,
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.Limit(),
	}, nil
}

// CountByStatus returns estimate counts keyed by status name
func (s *Service) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.estimateRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to count estimates", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to count estimates")
	}

	result := make(map[string]int64, len(counts))
	for status, count := range counts {
		result[string(status)] = count
	}
	return result, nil
}

// Update updates a draft estimate's title, property, and tax rate
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateEstimateRequest) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}

	if err := s.checkProperty(ctx, est.CustomerID, req.PropertyID); err != nil {
		return nil, err
	}

	if err := est.UpdateDetails(req.Title, req.PropertyID, req.TaxRate); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update estimate")
	}

	return ToEstimateResponse(est), nil
}

// AddItem appends a line item to a draft estimate
func (s *Service) AddItem(ctx context.Context, id uuid.UUID, req ItemInput) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}

	if _, err := est.AddItem(req.Description, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to add item")
	}

	return ToEstimateResponse(est), nil
}

// UpdateItem revises a line item on a draft estimate
func (s *Service) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req ItemInput) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}

	if err := est.UpdateItem(itemID, req.Description, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update item")
	}

	return ToEstimateResponse(est), nil
}

// RemoveItem deletes a line item from a draft estimate
func (s *Service) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}

	if err := est.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to remove item")
	}

	return ToEstimateResponse(est), nil
}

// Send transitions a draft estimate to sent and emails it to the customer.
// The transition is persisted before the email goes out; a delivery failure
// is reported in the result, not rolled back, so the CRM still shows the
// estimate as sent and the admin can retry from their mail client.
func (s *Service) Send(ctx context.Context, id uuid.UUID, req SendEstimateRequest) (*SendResult, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}
	if len(est.Items) == 0 {
		return nil, shared.NewValidationError("cannot send an estimate with no line items")
	}

	customer, err := s.customerRepo.FindByID(ctx, est.CustomerID)
	if err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = customer.Email
	}
	if recipient == "" {
		return nil, shared.NewValidationError("customer has no email address; provide a recipient")
	}

	if err := est.MarkSent(recipient); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to send estimate")
	}

	if s.metrics != nil {
		s.metrics.RecordEstimateSent(ctx, est.Total)
	}

	result := &SendResult{Estimate: ToEstimateResponse(est)}

	subject, html, text, err := renderEstimateEmail(est)
	if err != nil {
		s.logger.Error("Failed to render estimate email", zap.Error(err))
		result.EmailError = "failed to render email"
		return result, nil
	}

	emailID, err := s.mailer.Send(ctx, mail.Message{
		To:      est.EmailedTo,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		s.logger.Error("Estimate email delivery failed",
			zap.String("estimate_id", est.ID.String()),
			zap.String("recipient", est.EmailedTo),
			zap.Error(err))
		result.EmailError = err.Error()
		return result, nil
	}

	result.EmailDelivered = true
	result.EmailID = emailID

	s.logger.Info("Estimate sent",
		zap.String("estimate_id", est.ID.String()),
		zap.String("number", est.Number),
		zap.String("recipient", est.EmailedTo))

	return result, nil
}

// MarkInternalFinal finalizes a draft estimate without emailing the customer
func (s *Service) MarkInternalFinal(ctx context.Context, id uuid.UUID) (*EstimateResponse, error) {
	return s.transition(ctx, id, (*estimate.Estimate).MarkInternalFinal, "")
}

// Convert marks the estimate as won
func (s *Service) Convert(ctx context.Context, id uuid.UUID) (*EstimateResponse, error) {
	return s.transition(ctx, id, (*estimate.Estimate).Convert, estimate.StatusConverted)
}

// Decline marks the estimate as lost
func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*EstimateResponse, error) {
	return s.transition(ctx, id, (*estimate.Estimate).Decline, estimate.StatusDeclined)
}

// Delete removes a draft estimate and its items
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewNotFoundError("estimate")
	}
	if est.Status != estimate.StatusDraft {
		return shared.NewConflictError("only draft estimates can be deleted")
	}

	if err := s.estimateRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete estimate", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete estimate")
	}

	s.logger.Info("Estimate deleted", zap.String("estimate_id", id.String()))

	return nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, mutate func(*estimate.Estimate) error, decided estimate.Status) (*EstimateResponse, error) {
	est, err := s.estimateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("estimate")
	}

	if err := mutate(est); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, est); err != nil {
		s.logger.Error("Failed to save estimate", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update estimate")
	}

	if decided != "" && s.metrics != nil {
		s.metrics.RecordEstimateDecided(ctx, string(decided))
	}

	s.logger.Info("Estimate status changed",
		zap.String("estimate_id", est.ID.String()),
		zap.String("status", string(est.Status)))

	return ToEstimateResponse(est), nil
}

// checkProperty verifies the property exists and belongs to the customer
func (s *Service) checkProperty(ctx context.Context, customerID uuid.UUID, propertyID *uuid.UUID) error {
	if propertyID == nil {
		return nil
	}
	property, err := s.propertyRepo.FindByID(ctx, *propertyID)
	if err != nil {
		return shared.NewNotFoundError("property")
	}
	if property.CustomerID != customerID {
		return shared.NewValidationError("property does not belong to this customer")
	}
	return nil
}
