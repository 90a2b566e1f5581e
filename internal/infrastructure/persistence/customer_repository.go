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

// GormCustomerRepository implements crm.CustomerRepository using GORM.
// Queries exclude soft-deleted rows unless the method says otherwise.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a non-deleted customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDIncludingDeleted finds a customer regardless of deletion state
func (r *GormCustomerRepository) FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a non-deleted customer by normalized phone
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	if phone == "" {
		return nil, shared.NewValidationError("phone cannot be empty")
	}
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("phone = ? AND deleted_at IS NULL", phone).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns non-deleted customers matching the filter with the total count
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter crm.CustomerFilter) ([]*crm.Customer, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("deleted_at IS NULL")
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customerModels []models.CustomerModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&customerModels).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]*crm.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, total, nil
}

// HardDelete permanently removes a customer and its dependent rows
func (r *GormCustomerRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var propertyIDs []uuid.UUID
		if err := tx.Model(&models.PropertyModel{}).
			Where("customer_id = ?", id).
			Pluck("id", &propertyIDs).Error; err != nil {
			return err
		}

		if len(propertyIDs) > 0 {
			if err := tx.Delete(&models.PoolModel{}, "property_id IN ?", propertyIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.PropertyModel{}, "customer_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.NoteModel{}, "customer_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CommunicationModel{}, "customer_id = ?", id).Error; err != nil {
			return err
		}

		var estimateIDs []uuid.UUID
		if err := tx.Model(&models.EstimateModel{}).
			Where("customer_id = ?", id).
			Pluck("id", &estimateIDs).Error; err != nil {
			return err
		}
		if len(estimateIDs) > 0 {
			if err := tx.Delete(&models.EstimateItemModel{}, "estimate_id IN ?", estimateIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.EstimateModel{}, "customer_id = ?", id).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.CustomerModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByStatus returns customer counts keyed by status, excluding soft-deleted rows
func (r *GormCustomerRepository) CountByStatus(ctx context.Context) (map[crm.CustomerStatus]int64, error) {
	type row struct {
		Status crm.CustomerStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Select("status, COUNT(*) as count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[crm.CustomerStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter crm.CustomerFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)
