package estimate

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for estimate persistence. Save persists
// the aggregate together with its line items.
type Repository interface {
	// Save inserts or updates an estimate and its items
	Save(ctx context.Context, estimate *Estimate) error

	// FindByID loads an estimate with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Estimate, error)

	// FindByNumber loads an estimate by its unique number
	FindByNumber(ctx context.Context, number string) (*Estimate, error)

	// FindAll returns estimates matching the filter with the total count
	FindAll(ctx context.Context, filter Filter) ([]*Estimate, int64, error)

	// CountByStatus returns estimate counts keyed by status
	CountByStatus(ctx context.Context) (map[Status]int64, error)

	// NextNumber allocates the next estimate number
	NextNumber(ctx context.Context) (string, error)

	// Delete removes a draft estimate and its items
	Delete(ctx context.Context, id uuid.UUID) error
}

// Filter contains filter options for querying estimates
type Filter struct {
	// Filter by customer
	CustomerID *uuid.UUID

	// Filter by status
	Status *Status

	// Pagination
	Page     int
	PageSize int
}

// NewFilter creates a filter with default values
func NewFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f Filter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
