package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poolcrm/backend/internal/domain/schedule"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/persistence/models"
)

// GormCalendarEventRepository implements schedule.Repository using GORM
type GormCalendarEventRepository struct {
	db *gorm.DB
}

// NewGormCalendarEventRepository creates a new GormCalendarEventRepository
func NewGormCalendarEventRepository(db *gorm.DB) *GormCalendarEventRepository {
	return &GormCalendarEventRepository{db: db}
}

// Create inserts a new event
func (r *GormCalendarEventRepository) Create(ctx context.Context, event *schedule.Event) error {
	model := models.CalendarEventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateWithVersion writes the event only if the stored row still carries
// expectedVersion, bumping the version by one. When no row matches, a
// follow-up read tells a missing event apart from a stale version.
func (r *GormCalendarEventRepository) UpdateWithVersion(ctx context.Context, event *schedule.Event, expectedVersion int) error {
	model := models.CalendarEventModelFromDomain(event)
	model.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&models.CalendarEventModel{}).
		Where("id = ? AND version = ?", event.ID, expectedVersion).
		Select("title", "customer_id", "property_id", "assigned_to",
			"starts_at", "ends_at", "status", "notes", "version", "updated_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.CalendarEventModel{}).
			Where("id = ?", event.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.NewConflictError("calendar event was modified by another request")
	}

	event.Version = expectedVersion + 1
	return nil
}

// FindByID finds an event by ID
func (r *GormCalendarEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.Event, error) {
	var model models.CalendarEventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns events matching the filter, ordered by starts_at
func (r *GormCalendarEventRepository) FindAll(ctx context.Context, filter schedule.EventFilter) ([]*schedule.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.CalendarEventModel{})

	// Range filter keeps any event overlapping [From, To)
	if filter.From != nil {
		query = query.Where("ends_at > ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var eventModels []models.CalendarEventModel
	if err := query.Order("starts_at ASC").Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*schedule.Event, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events, nil
}

// Delete removes an event
func (r *GormCalendarEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CalendarEventModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ schedule.Repository = (*GormCalendarEventRepository)(nil)
