package identity

import (
	"context"

	"github.com/google/uuid"
)

// AdminRepository defines the interface for admin persistence
type AdminRepository interface {
	// Save inserts or updates an admin
	Save(ctx context.Context, admin *Admin) error

	// FindByID finds an admin by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)

	// FindByEmail finds an admin by email
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	// FindAll returns admins matching the filter with the total count
	FindAll(ctx context.Context, filter AdminFilter) ([]*Admin, int64, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AdminFilter contains filter options for querying admins
type AdminFilter struct {
	// Search keyword for email or full name
	Keyword string

	// Filter by role
	Role *AdminRole

	// Filter by active flag
	Active *bool

	// Pagination
	Page     int
	PageSize int
}

// NewAdminFilter creates a new AdminFilter with default values
func NewAdminFilter() AdminFilter {
	return AdminFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f AdminFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f AdminFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
