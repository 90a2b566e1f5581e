package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// NoteService handles internal customer notes
type NoteService struct {
	noteRepo     crm.NoteRepository
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo crm.NoteRepository,
	customerRepo crm.CustomerRepository,
	logger *zap.Logger,
) *NoteService {
	return &NoteService{
		noteRepo:     noteRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateNote adds a note to a customer, authored by the acting admin
func (s *NoteService) CreateNote(ctx context.Context, authorID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	note, err := crm.NewNote(req.CustomerID, authorID, req.Body)
	if err != nil {
		return nil, err
	}
	if req.Pinned {
		note.SetPinned(true)
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		s.logger.Error("Failed to save note", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create note")
	}

	return ToNoteResponse(note), nil
}

// GetNote returns one note by ID
func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("note")
	}
	return ToNoteResponse(note), nil
}

// ListNotesByCustomer returns a customer's notes, pinned first, then newest
// first
func (s *NoteService) ListNotesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*NoteResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	notes, err := s.noteRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to list notes", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list notes")
	}

	items := make([]*NoteResponse, 0, len(notes))
	for _, note := range notes {
		items = append(items, ToNoteResponse(note))
	}
	return items, nil
}

// UpdateNote revises a note's body or pinned state
func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("note")
	}

	if req.Body != nil {
		if err := note.UpdateBody(*req.Body); err != nil {
			return nil, err
		}
	}
	if req.Pinned != nil {
		note.SetPinned(*req.Pinned)
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		s.logger.Error("Failed to save note", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update note")
	}

	return ToNoteResponse(note), nil
}

// DeleteNote removes a note
func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.noteRepo.FindByID(ctx, id); err != nil {
		return shared.NewNotFoundError("note")
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete note", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete note")
	}

	return nil
}
