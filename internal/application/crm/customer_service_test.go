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

func newCustomerService(repo *MockCustomerRepository) *CustomerService {
	return NewCustomerService(repo, nil, zap.NewNop())
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	repo := new(MockCustomerRepository)
	repo.On("FindByPhone", mock.Anything, "5551234567").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Customer")).Return(nil)

	svc := newCustomerService(repo)

	resp, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name:   "Jordan Poolside",
		Phone:  "(555) 123-4567",
		Email:  "Jordan@Example.com",
		Source: "referral",
		Notes:  "Prefers morning visits",
	})

	require.NoError(t, err)
	assert.Equal(t, "5551234567", resp.Phone)
	assert.Equal(t, "jordan@example.com", resp.Email)
	assert.Equal(t, "lead", resp.Status)
	assert.Equal(t, "Prefers morning visits", resp.Notes)
	repo.AssertExpectations(t)
}

func TestCustomerService_CreateCustomer_DuplicatePhone(t *testing.T) {
	repo := new(MockCustomerRepository)
	existing := newTestCustomer(t)
	repo.On("FindByPhone", mock.Anything, "5551234567").Return(existing, nil)

	svc := newCustomerService(repo)

	_, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name:  "Another Person",
		Phone: "555-123-4567",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeDuplicatePhone, domainErr.Code)
	assert.Equal(t, existing.ID.String(), domainErr.Details["existing_customer_id"])
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_CreateCustomer_InvalidPhone(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := newCustomerService(repo)

	_, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name:  "Jordan Poolside",
		Phone: "not-a-phone",
	})

	assertDomainCode(t, err, shared.CodeValidation)
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t)

	repo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	svc := newCustomerService(repo)

	name := "Jordan Renamed"
	status := "active"
	resp, err := svc.UpdateCustomer(context.Background(), customer.ID, UpdateCustomerRequest{
		Name:   &name,
		Status: &status,
	})

	require.NoError(t, err)
	assert.Equal(t, "Jordan Renamed", resp.Name)
	assert.Equal(t, "active", resp.Status)
	// Phone untouched, so no duplicate check ran
	repo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
}

func TestCustomerService_UpdateCustomer_PhoneTakenByOther(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t)
	other, err := crm.NewCustomer("Sam Other", "555-999-0000", "", "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("FindByPhone", mock.Anything, "5559990000").Return(other, nil)

	svc := newCustomerService(repo)

	phone := "(555) 999-0000"
	_, err = svc.UpdateCustomer(context.Background(), customer.ID, UpdateCustomerRequest{Phone: &phone})
	assertDomainCode(t, err, shared.CodeDuplicatePhone)
}

func TestCustomerService_ListCustomers(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f crm.CustomerFilter) bool {
		return f.Search == "jordan" && f.Status != nil && *f.Status == crm.CustomerStatusLead
	})).Return([]*crm.Customer{customer}, int64(1), nil)

	svc := newCustomerService(repo)

	result, err := svc.ListCustomers(context.Background(), CustomerListFilter{
		Search: "jordan",
		Status: "lead",
	})

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
}

func TestCustomerService_DeleteAndRestore(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t)

	repo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("FindByPhone", mock.Anything, customer.Phone).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, customer).Return(nil)

	svc := newCustomerService(repo)

	require.NoError(t, svc.DeleteCustomer(context.Background(), customer.ID))
	assert.True(t, customer.IsDeleted())

	resp, err := svc.RestoreCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.DeletedAt)
}

func TestCustomerService_RestoreCustomer_PhoneReused(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t)
	require.NoError(t, customer.SoftDelete())

	usurper, err := crm.NewCustomer("New Holder", customer.Phone, "", "")
	require.NoError(t, err)

	repo.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("FindByPhone", mock.Anything, customer.Phone).Return(usurper, nil)

	svc := newCustomerService(repo)

	_, err = svc.RestoreCustomer(context.Background(), customer.ID)
	assertDomainCode(t, err, shared.CodeDuplicatePhone)
}

func TestCustomerService_HardDeleteCustomer(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t)

	repo.On("FindByIDIncludingDeleted", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("HardDelete", mock.Anything, customer.ID).Return(nil)

	svc := newCustomerService(repo)

	require.NoError(t, svc.HardDeleteCustomer(context.Background(), customer.ID))
	repo.AssertExpectations(t)
}

func TestCustomerService_HardDeleteCustomer_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	id := uuid.New()
	repo.On("FindByIDIncludingDeleted", mock.Anything, id).Return(nil, shared.ErrNotFound)

	svc := newCustomerService(repo)

	err := svc.HardDeleteCustomer(context.Background(), id)
	assertDomainCode(t, err, shared.CodeNotFound)
}

func TestCustomerService_CountCustomersByStatus(t *testing.T) {
	repo := new(MockCustomerRepository)
	repo.On("CountByStatus", mock.Anything).Return(map[crm.CustomerStatus]int64{
		crm.CustomerStatusLead:   4,
		crm.CustomerStatusActive: 11,
	}, nil)

	svc := newCustomerService(repo)

	counts, err := svc.CountCustomersByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts["lead"])
	assert.Equal(t, int64(11), counts["active"])
}
