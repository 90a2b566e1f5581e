package crm

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence.
// FindByID and FindAll exclude soft-deleted rows unless stated otherwise.
type CustomerRepository interface {
	// Save inserts or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// FindByID finds a non-deleted customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDIncludingDeleted finds a customer regardless of deletion state
	FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a non-deleted customer by normalized phone
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAll returns non-deleted customers matching the filter with the
	// total count
	FindAll(ctx context.Context, filter CustomerFilter) ([]*Customer, int64, error)

	// HardDelete permanently removes a customer and its dependent rows
	HardDelete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns customer counts keyed by status,
	// excluding soft-deleted rows
	CountByStatus(ctx context.Context) (map[CustomerStatus]int64, error)
}

// CustomerFilter contains filter options for querying customers
type CustomerFilter struct {
	// Search matches name, phone, or email, case-insensitive
	Search string

	// Filter by status
	Status *CustomerStatus

	// Pagination
	Page     int
	PageSize int
}

// NewCustomerFilter creates a filter with default values
func NewCustomerFilter() CustomerFilter {
	return CustomerFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f CustomerFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f CustomerFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	Save(ctx context.Context, property *Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PoolRepository defines the interface for pool persistence
type PoolRepository interface {
	Save(ctx context.Context, pool *Pool) error
	FindByID(ctx context.Context, id uuid.UUID) (*Pool, error)
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) (*Pool, error)
	ExistsByPropertyID(ctx context.Context, propertyID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	Save(ctx context.Context, note *Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)
	// FindByCustomerID returns the customer's notes, pinned first,
	// then newest first
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
