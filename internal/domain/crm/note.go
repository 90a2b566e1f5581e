package crm

import (
	"strings"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Note is an internal remark about a customer. Pinned notes sort before the
// rest in listings.
type Note struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	AuthorID   uuid.UUID
	Body       string
	Pinned     bool
}

// NewNote creates a note authored by an admin
func NewNote(customerID, authorID uuid.UUID, body string) (*Note, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewValidationError("author id cannot be empty")
	}
	if err := validateNoteBody(body); err != nil {
		return nil, err
	}

	return &Note{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		AuthorID:          authorID,
		Body:              strings.TrimSpace(body),
	}, nil
}

// UpdateBody replaces the note text
func (n *Note) UpdateBody(body string) error {
	if err := validateNoteBody(body); err != nil {
		return err
	}

	n.Body = strings.TrimSpace(body)
	n.Touch()
	n.IncrementVersion()

	return nil
}

// SetPinned pins or unpins the note
func (n *Note) SetPinned(pinned bool) {
	n.Pinned = pinned
	n.Touch()
	n.IncrementVersion()
}

func validateNoteBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return shared.NewValidationError("note body cannot be empty")
	}
	if len(body) > 10_000 {
		return shared.NewValidationError("note body cannot exceed 10000 characters")
	}
	return nil
}
