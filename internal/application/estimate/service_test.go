package estimate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/estimate"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/mail"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockEstimateRepository is a mock implementation of Repository
type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) Save(ctx context.Context, est *estimate.Estimate) error {
	args := m.Called(ctx, est)
	return args.Error(0)
}

func (m *MockEstimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*estimate.Estimate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimate.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) FindByNumber(ctx context.Context, number string) (*estimate.Estimate, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimate.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) FindAll(ctx context.Context, filter estimate.Filter) ([]*estimate.Estimate, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*estimate.Estimate), args.Get(1).(int64), args.Error(2)
}

func (m *MockEstimateRepository) CountByStatus(ctx context.Context) (map[estimate.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[estimate.Status]int64), args.Error(1)
}

func (m *MockEstimateRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockEstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCustomerRepository is a minimal customer repository mock
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter crm.CustomerFilter) ([]*crm.Customer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*crm.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountByStatus(ctx context.Context) (map[crm.CustomerStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[crm.CustomerStatus]int64), args.Error(1)
}

// MockPropertyRepository is a minimal property repository mock
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *crm.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*crm.Property, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*crm.Property), args.Error(1)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// failingMailer always fails delivery
type failingMailer struct{}

func (failingMailer) Send(ctx context.Context, msg mail.Message) (string, error) {
	return "", assert.AnError
}

// =============================================================================
// Helpers
// =============================================================================

type fixture struct {
	estimateRepo *MockEstimateRepository
	customerRepo *MockCustomerRepository
	propertyRepo *MockPropertyRepository
	mailer       *mail.NoopMailer
	svc          *Service
}

func newFixture() *fixture {
	f := &fixture{
		estimateRepo: new(MockEstimateRepository),
		customerRepo: new(MockCustomerRepository),
		propertyRepo: new(MockPropertyRepository),
		mailer:       mail.NewNoopMailer(),
	}
	f.svc = NewService(f.estimateRepo, f.customerRepo, f.propertyRepo, f.mailer, nil, zap.NewNop())
	return f
}

func newTestCustomer(t *testing.T, email string) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer("Jordan Poolside", "555-123-4567", email, "referral")
	require.NoError(t, err)
	return customer
}

func newDraftEstimate(t *testing.T, customerID uuid.UUID) *estimate.Estimate {
	t.Helper()
	est, err := estimate.NewEstimate(customerID, nil, "EST-2026-0001", "Weekly service", decimal.NewFromFloat(0.0825))
	require.NoError(t, err)
	_, err = est.AddItem("Weekly cleaning", decimal.NewFromInt(4), decimal.NewFromInt(40))
	require.NoError(t, err)
	return est
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// =============================================================================
// Create
// =============================================================================

func TestService_Create(t *testing.T) {
	f := newFixture()
	customer := newTestCustomer(t, "jordan@example.com")

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.estimateRepo.On("NextNumber", mock.Anything).Return("EST-2026-0007", nil)
	f.estimateRepo.On("Save", mock.Anything, mock.AnythingOfType("*estimate.Estimate")).Return(nil)

	resp, err := f.svc.Create(context.Background(), CreateEstimateRequest{
		CustomerID: customer.ID,
		Title:      "Green-to-clean",
		TaxRate:    decimal.NewFromFloat(0.0825),
		Items: []ItemInput{
			{Description: "Shock treatment", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250)},
			{Description: "Filter clean", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(75)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "EST-2026-0007", resp.Number)
	assert.Equal(t, "draft", resp.Status)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "400", resp.Subtotal.String())
	assert.Equal(t, "33", resp.Tax.String())
	assert.Equal(t, "433", resp.Total.String())
}

func TestService_Create_PropertyOfOtherCustomer(t *testing.T) {
	f := newFixture()
	customer := newTestCustomer(t, "")
	otherProperty, err := crm.NewProperty(uuid.New(), "9 Elsewhere Ct", "Mesa", "AZ", "85201")
	require.NoError(t, err)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.propertyRepo.On("FindByID", mock.Anything, otherProperty.ID).Return(otherProperty, nil)

	_, err = f.svc.Create(context.Background(), CreateEstimateRequest{
		CustomerID: customer.ID,
		PropertyID: &otherProperty.ID,
		Title:      "Repair quote",
	})

	assertDomainCode(t, err, shared.CodeValidation)
}

// =============================================================================
// Items
// =============================================================================

func TestService_AddItem_RecalculatesTotals(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.estimateRepo.On("Save", mock.Anything, est).Return(nil)

	resp, err := f.svc.AddItem(context.Background(), est.ID, ItemInput{
		Description: "Salt cell inspection",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(90),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "250", resp.Subtotal.String())
}

func TestService_AddItem_SentEstimate(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())
	require.NoError(t, est.MarkSent("jordan@example.com"))

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)

	_, err := f.svc.AddItem(context.Background(), est.ID, ItemInput{
		Description: "late addition",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(10),
	})

	assertDomainCode(t, err, shared.CodeConflict)
	f.estimateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_RemoveItem(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())
	itemID := est.Items[0].ID

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.estimateRepo.On("Save", mock.Anything, est).Return(nil)

	resp, err := f.svc.RemoveItem(context.Background(), est.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0", resp.Total.String())
}

// =============================================================================
// Send
// =============================================================================

func TestService_Send(t *testing.T) {
	f := newFixture()
	customer := newTestCustomer(t, "jordan@example.com")
	est := newDraftEstimate(t, customer.ID)

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.estimateRepo.On("Save", mock.Anything, est).Return(nil)

	result, err := f.svc.Send(context.Background(), est.ID, SendEstimateRequest{})

	require.NoError(t, err)
	assert.Equal(t, "sent", result.Estimate.Status)
	assert.Equal(t, "jordan@example.com", result.Estimate.EmailedTo)
	assert.True(t, result.EmailDelivered)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jordan@example.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "EST-2026-0001")
	assert.Contains(t, sent[0].HTML, "Weekly cleaning")
}

func TestService_Send_ExplicitRecipient(t *testing.T) {
	f := newFixture()
	customer := newTestCustomer(t, "")
	est := newDraftEstimate(t, customer.ID)

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.estimateRepo.On("Save", mock.Anything, est).Return(nil)

	result, err := f.svc.Send(context.Background(), est.ID, SendEstimateRequest{
		Recipient: "Spouse@Example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "spouse@example.com", result.Estimate.EmailedTo)
}

func TestService_Send_NoRecipient(t *testing.T) {
	f := newFixture()
	customer := newTestCustomer(t, "")
	est := newDraftEstimate(t, customer.ID)

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	_, err := f.svc.Send(context.Background(), est.ID, SendEstimateRequest{})
	assertDomainCode(t, err, shared.CodeValidation)
	assert.Equal(t, estimate.StatusDraft, est.Status)
}

func TestService_Send_EmptyEstimate(t *testing.T) {
	f := newFixture()
	customer := newTestCustomer(t, "jordan@example.com")
	est, err := estimate.NewEstimate(customer.ID, nil, "EST-2026-0002", "Empty", decimal.Zero)
	require.NoError(t, err)

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)

	_, err = f.svc.Send(context.Background(), est.ID, SendEstimateRequest{})
	assertDomainCode(t, err, shared.CodeValidation)
}

func TestService_Send_MailFailureKeepsTransition(t *testing.T) {
	estimateRepo := new(MockEstimateRepository)
	customerRepo := new(MockCustomerRepository)
	propertyRepo := new(MockPropertyRepository)
	svc := NewService(estimateRepo, customerRepo, propertyRepo, failingMailer{}, nil, zap.NewNop())

	customer := newTestCustomer(t, "jordan@example.com")
	est := newDraftEstimate(t, customer.ID)

	estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	estimateRepo.On("Save", mock.Anything, est).Return(nil)

	result, err := svc.Send(context.Background(), est.ID, SendEstimateRequest{})

	// The status change sticks; only delivery is reported as failed
	require.NoError(t, err)
	assert.Equal(t, "sent", result.Estimate.Status)
	assert.False(t, result.EmailDelivered)
	assert.NotEmpty(t, result.EmailError)
}

// =============================================================================
// Transitions and delete
// =============================================================================

func TestService_ConvertAndDecline(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())
	require.NoError(t, est.MarkSent("jordan@example.com"))

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.estimateRepo.On("Save", mock.Anything, est).Return(nil)

	resp, err := f.svc.Convert(context.Background(), est.ID)
	require.NoError(t, err)
	assert.Equal(t, "converted", resp.Status)
	assert.NotNil(t, resp.DecidedAt)

	// Converted is terminal
	_, err = f.svc.Decline(context.Background(), est.ID)
	assertDomainCode(t, err, shared.CodeConflict)
}

func TestService_MarkInternalFinal(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.estimateRepo.On("Save", mock.Anything, est).Return(nil)

	resp, err := f.svc.MarkInternalFinal(context.Background(), est.ID)
	require.NoError(t, err)
	assert.Equal(t, "internal_final", resp.Status)
}

func TestService_Delete_DraftOnly(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())

	f.estimateRepo.On("FindByID", mock.Anything, est.ID).Return(est, nil)
	f.estimateRepo.On("Delete", mock.Anything, est.ID).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), est.ID))

	require.NoError(t, est.MarkSent("jordan@example.com"))
	err := f.svc.Delete(context.Background(), est.ID)
	assertDomainCode(t, err, shared.CodeConflict)
}

func TestService_List(t *testing.T) {
	f := newFixture()
	est := newDraftEstimate(t, uuid.New())

	f.estimateRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter estimate.Filter) bool {
		return filter.Status != nil && *filter.Status == estimate.StatusDraft
	})).Return([]*estimate.Estimate{est}, int64(1), nil)

	result, err := f.svc.List(context.Background(), ListFilter{Status: "draft"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
}

func TestService_CountByStatus(t *testing.T) {
	f := newFixture()

	f.estimateRepo.On("CountByStatus", mock.Anything).Return(map[estimate.Status]int64{
		estimate.StatusDraft:     4,
		estimate.StatusSent:      2,
		estimate.StatusConverted: 1,
	}, nil)

	counts, err := f.svc.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts["draft"])
	assert.Equal(t, int64(2), counts["sent"])
	assert.Equal(t, int64(1), counts["converted"])
}
