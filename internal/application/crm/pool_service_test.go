package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

func TestPoolService_CreatePool(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	propertyRepo := new(MockPropertyRepository)

	customer := newTestCustomer(t)
	property := newTestProperty(t, customer.ID)

	propertyRepo.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	poolRepo.On("ExistsByPropertyID", mock.Anything, property.ID).Return(false, nil)
	poolRepo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Pool")).Return(nil)

	svc := NewPoolService(poolRepo, propertyRepo, zap.NewNop())

	resp, err := svc.CreatePool(context.Background(), CreatePoolRequest{
		PropertyID:    property.ID,
		Kind:          "inground",
		Sanitizer:     "salt",
		VolumeGallons: 18000,
		Surface:       "pebble",
	})

	require.NoError(t, err)
	assert.Equal(t, "inground", resp.Kind)
	assert.Equal(t, "salt", resp.Sanitizer)
	assert.Equal(t, 18000, resp.VolumeGallons)
	assert.Equal(t, "pebble", resp.Surface)
}

func TestPoolService_CreatePool_PropertyAlreadyHasPool(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	propertyRepo := new(MockPropertyRepository)

	customer := newTestCustomer(t)
	property := newTestProperty(t, customer.ID)

	propertyRepo.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	poolRepo.On("ExistsByPropertyID", mock.Anything, property.ID).Return(true, nil)

	svc := NewPoolService(poolRepo, propertyRepo, zap.NewNop())

	_, err := svc.CreatePool(context.Background(), CreatePoolRequest{
		PropertyID:    property.ID,
		Kind:          "spa",
		Sanitizer:     "bromine",
		VolumeGallons: 600,
	})

	assertDomainCode(t, err, shared.CodeConflict)
	poolRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPoolService_UpdatePool(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	propertyRepo := new(MockPropertyRepository)

	customer := newTestCustomer(t)
	property := newTestProperty(t, customer.ID)
	pool, err := crm.NewPool(property.ID, crm.PoolKindInground, crm.SanitizerChlorine, 15000)
	require.NoError(t, err)

	poolRepo.On("FindByID", mock.Anything, pool.ID).Return(pool, nil)
	poolRepo.On("Save", mock.Anything, pool).Return(nil)

	svc := NewPoolService(poolRepo, propertyRepo, zap.NewNop())

	sanitizer := "salt"
	resp, err := svc.UpdatePool(context.Background(), pool.ID, UpdatePoolRequest{Sanitizer: &sanitizer})

	require.NoError(t, err)
	assert.Equal(t, "salt", resp.Sanitizer)
	// Other fields carried over
	assert.Equal(t, "inground", resp.Kind)
	assert.Equal(t, 15000, resp.VolumeGallons)
}
