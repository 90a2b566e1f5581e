package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// PoolService handles pool records. Each property has at most one pool.
type PoolService struct {
	poolRepo     crm.PoolRepository
	propertyRepo crm.PropertyRepository
	logger       *zap.Logger
}

// NewPoolService creates a new pool service
func NewPoolService(
	poolRepo crm.PoolRepository,
	propertyRepo crm.PropertyRepository,
	logger *zap.Logger,
) *PoolService {
	return &PoolService{
		poolRepo:     poolRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// CreatePool records the pool at a property
func (s *PoolService) CreatePool(ctx context.Context, req CreatePoolRequest) (*PoolResponse, error) {
	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		return nil, shared.NewNotFoundError("property")
	}

	exists, err := s.poolRepo.ExistsByPropertyID(ctx, req.PropertyID)
	if err != nil {
		s.logger.Error("Failed to check pool existence", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create pool")
	}
	if exists {
		return nil, shared.NewConflictError("property already has a pool")
	}

	pool, err := crm.NewPool(req.PropertyID, crm.PoolKind(req.Kind), crm.Sanitizer(req.Sanitizer), req.VolumeGallons)
	if err != nil {
		return nil, err
	}
	if req.Surface != "" || req.EquipmentNotes != "" {
		pool.SetDetails(req.Surface, req.EquipmentNotes)
	}

	if err := s.poolRepo.Save(ctx, pool); err != nil {
		s.logger.Error("Failed to save pool", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create pool")
	}

	s.logger.Info("Pool created",
		zap.String("pool_id", pool.ID.String()),
		zap.String("property_id", req.PropertyID.String()))

	return ToPoolResponse(pool), nil
}

// GetPool returns one pool by ID
func (s *PoolService) GetPool(ctx context.Context, id uuid.UUID) (*PoolResponse, error) {
	pool, err := s.poolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("pool")
	}
	return ToPoolResponse(pool), nil
}

// GetPoolByProperty returns the pool at a property, if recorded
func (s *PoolService) GetPoolByProperty(ctx context.Context, propertyID uuid.UUID) (*PoolResponse, error) {
	pool, err := s.poolRepo.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, shared.NewNotFoundError("pool")
	}
	return ToPoolResponse(pool), nil
}

// UpdatePool updates a pool's characteristics
func (s *PoolService) UpdatePool(ctx context.Context, id uuid.UUID, req UpdatePoolRequest) (*PoolResponse, error) {
	pool, err := s.poolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("pool")
	}

	if req.Kind != nil || req.Sanitizer != nil || req.VolumeGallons != nil {
		kind := pool.Kind
		sanitizer := pool.Sanitizer
		volume := pool.VolumeGallons
		if req.Kind != nil {
			kind = crm.PoolKind(*req.Kind)
		}
		if req.Sanitizer != nil {
			sanitizer = crm.Sanitizer(*req.Sanitizer)
		}
		if req.VolumeGallons != nil {
			volume = *req.VolumeGallons
		}
		if err := pool.Update(kind, sanitizer, volume); err != nil {
			return nil, err
		}
	}

	if req.Surface != nil || req.EquipmentNotes != nil {
		surface := pool.Surface
		equipmentNotes := pool.EquipmentNotes
		if req.Surface != nil {
			surface = *req.Surface
		}
		if req.EquipmentNotes != nil {
			equipmentNotes = *req.EquipmentNotes
		}
		pool.SetDetails(surface, equipmentNotes)
	}

	if err := s.poolRepo.Save(ctx, pool); err != nil {
		s.logger.Error("Failed to save pool", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update pool")
	}

	return ToPoolResponse(pool), nil
}

// DeletePool removes a pool record
func (s *PoolService) DeletePool(ctx context.Context, id uuid.UUID) error {
	if _, err := s.poolRepo.FindByID(ctx, id); err != nil {
		return shared.NewNotFoundError("pool")
	}

	if err := s.poolRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete pool", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete pool")
	}

	s.logger.Info("Pool deleted", zap.String("pool_id", id.String()))

	return nil
}
