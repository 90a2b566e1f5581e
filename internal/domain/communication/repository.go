package communication

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Query narrows a customer's communication listing. Listings are ordered
// (occurred_at, id) descending; Cursor, when set, resumes after that position.
type Query struct {
	Cursor    *shared.Cursor
	Limit     int
	Type      *Type
	Direction *Direction
	DateFrom  *time.Time
	DateTo    *time.Time
}

// EffectiveLimit clamps the page size
func (q Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return 20
	}
	if q.Limit > 100 {
		return 100
	}
	return q.Limit
}

// SearchHit is a read model for the global communication search: the
// communication plus enough customer context to render a result row.
type SearchHit struct {
	Communication *Communication
	CustomerName  string
	CustomerPhone string
}

// Repository defines the interface for communication persistence
type Repository interface {
	// Save inserts or updates a communication
	Save(ctx context.Context, comm *Communication) error

	// FindByID finds a communication by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Communication, error)

	// FindByCustomerID pages through a customer's communications newest
	// first. The bool reports whether more rows exist past this page.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, query Query) ([]*Communication, bool, error)

	// Search matches summaries across all customers, newest first
	Search(ctx context.Context, search string, limit int) ([]*SearchHit, error)

	// Delete removes a communication
	Delete(ctx context.Context, id uuid.UUID) error
}
