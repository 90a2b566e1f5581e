package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcomm "github.com/poolcrm/backend/internal/application/communication"
	appcrm "github.com/poolcrm/backend/internal/application/crm"
	domaincomm "github.com/poolcrm/backend/internal/domain/communication"
	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// ===== Mock Repositories =====

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

type MockCommunicationRepository struct {
	mock.Mock
}

func (m *MockCommunicationRepository) Save(ctx context.Context, comm *domaincomm.Communication) error {
	args := m.Called(ctx, comm)
	return args.Error(0)
}

func (m *MockCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domaincomm.Communication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincomm.Communication), args.Error(1)
}

func (m *MockCommunicationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, query domaincomm.Query) ([]*domaincomm.Communication, bool, error) {
	args := m.Called(ctx, customerID, query)
	return args.Get(0).([]*domaincomm.Communication), args.Bool(1), args.Error(2)
}

func (m *MockCommunicationRepository) Search(ctx context.Context, search string, limit int) ([]*domaincomm.SearchHit, error) {
	args := m.Called(ctx, search, limit)
	return args.Get(0).([]*domaincomm.SearchHit), args.Error(1)
}

func (m *MockCommunicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ===== Helpers =====

type fixture struct {
	customerRepo *MockCustomerRepository
	commRepo     *MockCommunicationRepository
	router       *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	customerRepo := new(MockCustomerRepository)
	commRepo := new(MockCommunicationRepository)

	customerService := appcrm.NewCustomerService(customerRepo, nil, zap.NewNop())
	commService := appcomm.NewService(commRepo, customerRepo, nil, zap.NewNop())

	site, err := NewSite(customerService, commService, zap.NewNop())
	require.NoError(t, err)

	r := gin.New()
	site.RegisterRoutes(r)

	return &fixture{customerRepo: customerRepo, commRepo: commRepo, router: r}
}

func (f *fixture) postContact(form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	f.router.ServeHTTP(w, req)
	return w
}

// ===== Tests =====

func TestSite_Pages(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/", "/services", "/contact"} {
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "Clearwater Pool Service", path)
	}
}

func TestSite_ServicesPage_ListsOfferings(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))

	assert.Contains(t, w.Body.String(), "Weekly Pool Cleaning")
	assert.Contains(t, w.Body.String(), "Green Pool Recovery")
}

func TestSite_ContactSubmit_CreatesLead(t *testing.T) {
	f := newFixture(t)

	lead, err := crm.NewCustomer("Sam Splash", "5559876543", "", "website")
	require.NoError(t, err)

	f.customerRepo.On("FindByPhone", mock.Anything, "5559876543").Return(nil, shared.ErrNotFound)
	f.customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Customer")).Return(nil)
	f.customerRepo.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(lead, nil)
	f.commRepo.On("Save", mock.Anything, mock.AnythingOfType("*communication.Communication")).Return(nil)

	w := f.postContact(url.Values{
		"name":    {"Sam Splash"},
		"phone":   {"(555) 987-6543"},
		"message": {"My pool turned green last week"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thanks, Sam Splash!")

	f.customerRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*crm.Customer"))
	f.commRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*communication.Communication"))
}

func TestSite_ContactSubmit_KnownPhoneAttachesToExisting(t *testing.T) {
	f := newFixture(t)

	existing, err := crm.NewCustomer("Sam Splash", "5559876543", "sam@example.com", "referral")
	require.NoError(t, err)

	f.customerRepo.On("FindByPhone", mock.Anything, "5559876543").Return(existing, nil)
	f.customerRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	f.commRepo.On("Save", mock.Anything, mock.AnythingOfType("*communication.Communication")).Return(nil)

	w := f.postContact(url.Values{
		"name":    {"Sam Splash"},
		"phone":   {"555-987-6543"},
		"message": {"Following up on my estimate"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thanks")

	// No new customer row
	f.customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.commRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*communication.Communication"))
}

func TestSite_ContactSubmit_MissingPhone(t *testing.T) {
	f := newFixture(t)

	w := f.postContact(url.Values{"name": {"No Phone"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone number")
}

func TestSite_ContactSubmit_BadPhone(t *testing.T) {
	f := newFixture(t)

	w := f.postContact(url.Values{
		"name":  {"Bad Phone"},
		"phone": {"call me maybe"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not look right")
}
