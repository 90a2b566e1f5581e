package communication

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/communication"
	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/telemetry"
)

// Service handles the customer communication log
type Service struct {
	commRepo     communication.Repository
	customerRepo crm.CustomerRepository
	metrics      *telemetry.CRMMetrics
	logger       *zap.Logger
}

// NewService creates a new communication service. metrics may be nil when
// telemetry is disabled.
func NewService(
	commRepo communication.Repository,
	customerRepo crm.CustomerRepository,
	metrics *telemetry.CRMMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		commRepo:     commRepo,
		customerRepo: customerRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Log records an interaction with a customer
func (s *Service) Log(ctx context.Context, loggedBy uuid.UUID, req LogCommunicationRequest) (*CommunicationResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	comm, err := communication.NewCommunication(
		req.CustomerID,
		loggedBy,
		communication.Type(req.Type),
		communication.Direction(req.Direction),
		req.Summary,
		req.OccurredAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.commRepo.Save(ctx, comm); err != nil {
		s.logger.Error("Failed to save communication", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to log communication")
	}

	if s.metrics != nil {
		s.metrics.RecordCommunicationLogged(ctx, string(comm.Type), string(comm.Direction))
	}

	s.logger.Info("Communication logged",
		zap.String("communication_id", comm.ID.String()),
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("type", string(comm.Type)))

	return ToCommunicationResponse(comm), nil
}

// Get returns one communication by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CommunicationResponse, error) {
	comm, err := s.commRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("communication")
	}
	return ToCommunicationResponse(comm), nil
}

// Update revises a logged interaction
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCommunicationRequest) (*CommunicationResponse, error) {
	comm, err := s.commRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("communication")
	}

	err = comm.Update(
		communication.Type(req.Type),
		communication.Direction(req.Direction),
		req.Summary,
		req.OccurredAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.commRepo.Save(ctx, comm); err != nil {
		s.logger.Error("Failed to save communication", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update communication")
	}

	return ToCommunicationResponse(comm), nil
}

// Delete removes a communication from the log
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.commRepo.FindByID(ctx, id); err != nil {
		return shared.NewNotFoundError("communication")
	}

	if err := s.commRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete communication", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete communication")
	}

	return nil
}

// Timeline pages through a customer's communications newest first using
// keyset pagination, so pages stay stable while new rows arrive.
func (s *Service) Timeline(ctx context.Context, customerID uuid.UUID, req ListCommunicationsRequest) (*TimelinePage, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	query, err := buildQuery(req)
	if err != nil {
		return nil, err
	}

	comms, hasMore, err := s.commRepo.FindByCustomerID(ctx, customerID, query)
	if err != nil {
		s.logger.Error("Failed to list communications", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list communications")
	}

	items := make([]*CommunicationResponse, 0, len(comms))
	for _, comm := range comms {
		items = append(items, ToCommunicationResponse(comm))
	}

	page := &TimelinePage{
		Items:   items,
		HasMore: hasMore,
	}
	if hasMore && len(comms) > 0 {
		last := comms[len(comms)-1]
		page.NextCursor = shared.Cursor{OccurredAt: last.OccurredAt, ID: last.ID}.Encode()
	}

	return page, nil
}

// Search matches summaries across all customers, newest first
func (s *Service) Search(ctx context.Context, search string, limit int) ([]*SearchHitResponse, error) {
	if search == "" {
		return nil, shared.NewValidationError("search term cannot be empty")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	hits, err := s.commRepo.Search(ctx, search, limit)
	if err != nil {
		s.logger.Error("Failed to search communications", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to search communications")
	}

	results := make([]*SearchHitResponse, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &SearchHitResponse{
			Communication: ToCommunicationResponse(hit.Communication),
			CustomerName:  hit.CustomerName,
			CustomerPhone: hit.CustomerPhone,
		})
	}
	return results, nil
}

func buildQuery(req ListCommunicationsRequest) (communication.Query, error) {
	var query communication.Query
	query.Limit = req.Limit

	if req.Cursor != "" {
		cursor, err := shared.DecodeCursor(req.Cursor)
		if err != nil {
			return query, err
		}
		query.Cursor = &cursor
	}
	if req.Type != "" {
		commType := communication.Type(req.Type)
		query.Type = &commType
	}
	if req.Direction != "" {
		direction := communication.Direction(req.Direction)
		query.Direction = &direction
	}
	if req.DateFrom != "" {
		from, err := time.Parse(time.RFC3339, req.DateFrom)
		if err != nil {
			return query, shared.NewValidationError("date_from must be RFC 3339")
		}
		query.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse(time.RFC3339, req.DateTo)
		if err != nil {
			return query, shared.NewValidationError("date_to must be RFC 3339")
		}
		query.DateTo = &to
	}

	return query, nil
}
