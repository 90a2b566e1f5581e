package crm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

func TestPropertyService_CreateProperty(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)

	customer := newTestCustomer(t)
	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	propertyRepo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Property")).Return(nil)

	svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())

	resp, err := svc.CreateProperty(context.Background(), CreatePropertyRequest{
		CustomerID: customer.ID,
		Street:     "42 Lagoon Dr",
		City:       "Phoenix",
		State:      "az",
		Zip:        "85001",
		GateCode:   "4242",
	})

	require.NoError(t, err)
	assert.Equal(t, "AZ", resp.State)
	assert.Equal(t, "4242", resp.GateCode)
	assert.Equal(t, "42 Lagoon Dr, Phoenix, AZ 85001", resp.FullAddress)
}

func TestPropertyService_CreateProperty_UnknownCustomer(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)

	id := uuid.New()
	customerRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())

	_, err := svc.CreateProperty(context.Background(), CreatePropertyRequest{
		CustomerID: id,
		Street:     "42 Lagoon Dr",
		City:       "Phoenix",
		State:      "AZ",
		Zip:        "85001",
	})

	assertDomainCode(t, err, shared.CodeNotFound)
	propertyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPropertyService_UpdateProperty_PartialAddress(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)

	customer := newTestCustomer(t)
	property := newTestProperty(t, customer.ID)

	propertyRepo.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	propertyRepo.On("Save", mock.Anything, property).Return(nil)

	svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())

	city := "Scottsdale"
	resp, err := svc.UpdateProperty(context.Background(), property.ID, UpdatePropertyRequest{City: &city})

	require.NoError(t, err)
	assert.Equal(t, "Scottsdale", resp.City)
	assert.Equal(t, "42 Lagoon Dr", resp.Street)
}

func TestPropertyService_ListPropertiesByCustomer(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)

	customer := newTestCustomer(t)
	property := newTestProperty(t, customer.ID)

	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	propertyRepo.On("FindByCustomerID", mock.Anything, customer.ID).
		Return([]*crm.Property{property}, nil)

	svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())

	items, err := svc.ListPropertiesByCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, property.ID, items[0].ID)
}

func TestPropertyService_DeleteProperty(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)

	customer := newTestCustomer(t)
	property := newTestProperty(t, customer.ID)

	propertyRepo.On("FindByID", mock.Anything, property.ID).Return(property, nil)
	propertyRepo.On("Delete", mock.Anything, property.ID).Return(nil)

	svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())

	require.NoError(t, svc.DeleteProperty(context.Background(), property.ID))
	propertyRepo.AssertExpectations(t)
}
