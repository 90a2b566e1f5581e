package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poolcrm/backend/internal/domain/estimate"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/persistence/models"
)

// GormEstimateRepository implements estimate.Repository using GORM.
// The aggregate is written transactionally: header row plus a
// delete-and-reinsert of its line items.
type GormEstimateRepository struct {
	db *gorm.DB
}

// NewGormEstimateRepository creates a new GormEstimateRepository
func NewGormEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

// Save inserts or updates an estimate and its items
func (r *GormEstimateRepository) Save(ctx context.Context, est *estimate.Estimate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.EstimateModelFromDomain(est)
		if err := tx.Save(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewConflictError("estimate number %s is already taken", est.Number)
			}
			return err
		}

		if err := tx.Delete(&models.EstimateItemModel{}, "estimate_id = ?", est.ID).Error; err != nil {
			return err
		}
		if len(est.Items) == 0 {
			return nil
		}

		itemModels := make([]*models.EstimateItemModel, len(est.Items))
		for i, item := range est.Items {
			itemModels[i] = models.EstimateItemModelFromDomain(item)
		}
		return tx.Create(itemModels).Error
	})
}

// FindByID loads an estimate with its items
func (r *GormEstimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*estimate.Estimate, error) {
	var model models.EstimateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.attachItems(ctx, &model)
}

// FindByNumber loads an estimate by its unique number
func (r *GormEstimateRepository) FindByNumber(ctx context.Context, number string) (*estimate.Estimate, error) {
	var model models.EstimateModel
	if err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.attachItems(ctx, &model)
}

// FindAll returns estimates matching the filter with the total count.
// Listings do not load line items; FindByID does.
func (r *GormEstimateRepository) FindAll(ctx context.Context, filter estimate.Filter) ([]*estimate.Estimate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EstimateModel{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var estimateModels []models.EstimateModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&estimateModels).Error; err != nil {
		return nil, 0, err
	}

	estimates := make([]*estimate.Estimate, len(estimateModels))
	for i := range estimateModels {
		estimates[i] = estimateModels[i].ToDomain()
	}
	return estimates, total, nil
}

// CountByStatus returns estimate counts keyed by status
func (r *GormEstimateRepository) CountByStatus(ctx context.Context) (map[estimate.Status]int64, error) {
	type row struct {
		Status estimate.Status
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.EstimateModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[estimate.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// NextNumber allocates the next estimate number in the form EST-<year>-<seq>.
// The sequence restarts each calendar year and always advances past the
// highest number ever issued, so deleting an estimate never frees a number
// that a later insert would collide on. The length ordering keeps the scan
// correct once sequences outgrow their zero padding.
func (r *GormEstimateRepository) NextNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("EST-%d-", year)

	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.EstimateModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		Limit(1).
		Pluck("number", &numbers).Error; err != nil {
		return "", err
	}

	seq := 0
	if len(numbers) > 0 {
		n, err := strconv.Atoi(strings.TrimPrefix(numbers[0], prefix))
		if err != nil {
			return "", fmt.Errorf("parse estimate number %q: %w", numbers[0], err)
		}
		seq = n
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

// Delete removes a draft estimate and its items
func (r *GormEstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.EstimateItemModel{}, "estimate_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.EstimateModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormEstimateRepository) attachItems(ctx context.Context, model *models.EstimateModel) (*estimate.Estimate, error) {
	var itemModels []models.EstimateItemModel
	if err := r.db.WithContext(ctx).
		Where("estimate_id = ?", model.ID).
		Order("sort_order ASC, created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	est := model.ToDomain()
	est.Items = make([]estimate.Item, len(itemModels))
	for i := range itemModels {
		est.Items[i] = itemModels[i].ToDomain()
	}
	return est, nil
}

var _ estimate.Repository = (*GormEstimateRepository)(nil)
