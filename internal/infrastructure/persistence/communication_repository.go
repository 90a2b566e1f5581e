package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poolcrm/backend/internal/domain/communication"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/persistence/models"
)

// GormCommunicationRepository implements communication.Repository using GORM
type GormCommunicationRepository struct {
	db *gorm.DB
}

// NewGormCommunicationRepository creates a new GormCommunicationRepository
func NewGormCommunicationRepository(db *gorm.DB) *GormCommunicationRepository {
	return &GormCommunicationRepository{db: db}
}

// Save creates or updates a communication
func (r *GormCommunicationRepository) Save(ctx context.Context, comm *communication.Communication) error {
	model := models.CommunicationModelFromDomain(comm)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a communication by ID
func (r *GormCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*communication.Communication, error) {
	var model models.CommunicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomerID pages through a customer's communications newest first
// using keyset pagination on (occurred_at, id). One extra row is fetched to
// learn whether more pages exist.
func (r *GormCommunicationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, query communication.Query) ([]*communication.Communication, bool, error) {
	limit := query.EffectiveLimit()

	q := r.db.WithContext(ctx).
		Model(&models.CommunicationModel{}).
		Where("customer_id = ?", customerID)

	if query.Type != nil {
		q = q.Where("type = ?", *query.Type)
	}
	if query.Direction != nil {
		q = q.Where("direction = ?", *query.Direction)
	}
	if query.DateFrom != nil {
		q = q.Where("occurred_at >= ?", *query.DateFrom)
	}
	if query.DateTo != nil {
		q = q.Where("occurred_at < ?", *query.DateTo)
	}
	if query.Cursor != nil {
		q = q.Where("(occurred_at, id) < (?, ?)", query.Cursor.OccurredAt, query.Cursor.ID)
	}

	var commModels []models.CommunicationModel
	if err := q.
		Order("occurred_at DESC, id DESC").
		Limit(limit + 1).
		Find(&commModels).Error; err != nil {
		return nil, false, err
	}

	hasMore := len(commModels) > limit
	if hasMore {
		commModels = commModels[:limit]
	}

	comms := make([]*communication.Communication, len(commModels))
	for i := range commModels {
		comms[i] = commModels[i].ToDomain()
	}
	return comms, hasMore, nil
}

// Search matches summaries across all customers, newest first. Each hit
// carries the customer's name and phone for the result row.
func (r *GormCommunicationRepository) Search(ctx context.Context, search string, limit int) ([]*communication.SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	type hitRow struct {
		models.CommunicationModel
		CustomerName  string
		CustomerPhone string
	}

	pattern := "%" + search + "%"
	var rows []hitRow
	if err := r.db.WithContext(ctx).
		Table("communications").
		Select("communications.*, customers.name AS customer_name, customers.phone AS customer_phone").
		Joins("JOIN customers ON customers.id = communications.customer_id").
		Where("communications.summary ILIKE ?", pattern).
		Where("customers.deleted_at IS NULL").
		Order("communications.occurred_at DESC, communications.id DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	hits := make([]*communication.SearchHit, len(rows))
	for i := range rows {
		hits[i] = &communication.SearchHit{
			Communication: rows[i].CommunicationModel.ToDomain(),
			CustomerName:  rows[i].CustomerName,
			CustomerPhone: rows[i].CustomerPhone,
		}
	}
	return hits, nil
}

// Delete removes a communication
func (r *GormCommunicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommunicationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ communication.Repository = (*GormCommunicationRepository)(nil)
