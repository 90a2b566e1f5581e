package crm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/telemetry"
)

// CustomerService handles customer lifecycle operations
type CustomerService struct {
	customerRepo crm.CustomerRepository
	metrics      *telemetry.CRMMetrics
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service. metrics may be nil when
// telemetry is disabled.
func NewCustomerService(
	customerRepo crm.CustomerRepository,
	metrics *telemetry.CRMMetrics,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateCustomer creates a new customer. Phone must be unique among
// non-deleted customers; a duplicate yields DUPLICATE_PHONE carrying the
// existing customer's ID so the UI can link to it.
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	normalized, err := crm.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	if existing, err := s.customerRepo.FindByPhone(ctx, normalized); err == nil && existing != nil {
		return nil, shared.
			NewDomainError(shared.CodeDuplicatePhone, "A customer with this phone number already exists").
			WithDetail("existing_customer_id", existing.ID.String())
	}

	customer, err := crm.NewCustomer(req.Name, req.Phone, req.Email, req.Source)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create customer")
	}

	if s.metrics != nil {
		s.metrics.RecordCustomerCreated(ctx, customer.Source)
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("source", customer.Source))

	return ToCustomerResponse(customer), nil
}

// GetCustomer returns one non-deleted customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("customer")
	}
	return ToCustomerResponse(customer), nil
}

// ListCustomers returns non-deleted customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter CustomerListFilter) (*CustomerListResult, error) {
	domainFilter := crm.NewCustomerFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		status := crm.CustomerStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	customers, total, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("Failed to list customers", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list customers")
	}

	items := make([]*CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		items = append(items, ToCustomerResponse(customer))
	}

	return &CustomerListResult{
		Items:    items,
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.Limit(),
	}, nil
}

// UpdateCustomer updates a customer's contact details, status, and notes
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	if req.Name != nil || req.Phone != nil || req.Email != nil {
		name := customer.Name
		phone := customer.Phone
		email := customer.Email
		if req.Name != nil {
			name = *req.Name
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}

		if req.Phone != nil {
			normalized, err := crm.NormalizePhone(phone)
			if err != nil {
				return nil, err
			}
			if normalized != customer.Phone {
				if existing, err := s.customerRepo.FindByPhone(ctx, normalized); err == nil && existing != nil {
					return nil, shared.
						NewDomainError(shared.CodeDuplicatePhone, "A customer with this phone number already exists").
						WithDetail("existing_customer_id", existing.ID.String())
				}
			}
		}

		if err := customer.Update(name, phone, email); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := customer.SetStatus(crm.CustomerStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update customer")
	}

	return ToCustomerResponse(customer), nil
}

// DeleteCustomer soft-deletes a customer. The row stays for restore and its
// phone no longer blocks new customers.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewNotFoundError("customer")
	}

	if err := customer.SoftDelete(); err != nil {
		return err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete customer")
	}

	s.logger.Info("Customer soft-deleted", zap.String("customer_id", id.String()))

	return nil
}

// RestoreCustomer undoes a soft delete. If the phone was reused by another
// customer in the meantime the restore is refused.
func (s *CustomerService) RestoreCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDIncludingDeleted(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	if existing, err := s.customerRepo.FindByPhone(ctx, customer.Phone); err == nil && existing != nil && existing.ID != customer.ID {
		return nil, shared.
			NewDomainError(shared.CodeDuplicatePhone, "The phone number now belongs to another customer").
			WithDetail("existing_customer_id", existing.ID.String())
	}

	if err := customer.Restore(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to restore customer")
	}

	s.logger.Info("Customer restored", zap.String("customer_id", id.String()))

	return ToCustomerResponse(customer), nil
}

// HardDeleteCustomer permanently removes a customer and its dependent rows.
// Route-level middleware restricts this to owners.
func (s *CustomerService) HardDeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDIncludingDeleted(ctx, id); err != nil {
		return shared.NewNotFoundError("customer")
	}

	if err := s.customerRepo.HardDelete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("customer")
		}
		s.logger.Error("Failed to hard-delete customer", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete customer")
	}

	s.logger.Warn("Customer permanently deleted", zap.String("customer_id", id.String()))

	return nil
}

// CountCustomersByStatus returns customer counts keyed by status name
func (s *CustomerService) CountCustomersByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.customerRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to count customers", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to count customers")
	}

	result := make(map[string]int64, len(counts))
	for status, count := range counts {
		result[string(status)] = count
	}
	return result, nil
}
