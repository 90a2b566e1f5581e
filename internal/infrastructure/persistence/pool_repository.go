package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/persistence/models"
)

// GormPoolRepository implements crm.PoolRepository using GORM
type GormPoolRepository struct {
	db *gorm.DB
}

// NewGormPoolRepository creates a new GormPoolRepository
func NewGormPoolRepository(db *gorm.DB) *GormPoolRepository {
	return &GormPoolRepository{db: db}
}

// Save creates or updates a pool
func (r *GormPoolRepository) Save(ctx context.Context, pool *crm.Pool) error {
	model := models.PoolModelFromDomain(pool)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a pool by ID
func (r *GormPoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Pool, error) {
	var model models.PoolModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPropertyID finds the pool for a property
func (r *GormPoolRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID) (*crm.Pool, error) {
	var model models.PoolModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByPropertyID checks if a property already has a pool
func (r *GormPoolRepository) ExistsByPropertyID(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PoolModel{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a pool
func (r *GormPoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PoolModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ crm.PoolRepository = (*GormPoolRepository)(nil)
