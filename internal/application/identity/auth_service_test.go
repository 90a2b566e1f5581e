package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/identity"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/auth"
	"github.com/poolcrm/backend/internal/infrastructure/config"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockAdminRepository is a mock implementation of AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Save(ctx context.Context, admin *identity.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*identity.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindAll(ctx context.Context, filter identity.AdminFilter) ([]*identity.Admin, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.Admin), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "poolcrm-test",
	})
}

func newTestAdmin(t *testing.T, role identity.AdminRole) *identity.Admin {
	t.Helper()
	admin, err := identity.NewAdmin("owner@poolcrm.example.com", "Pat Owner", "Sw1mming-pools", role)
	require.NoError(t, err)
	return admin
}

func newAuthService(repo *MockAdminRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(repo, newTestJWTService(), blacklist, zap.NewNop())
	return svc, blacklist
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// =============================================================================
// Login
// =============================================================================

func TestAuthService_Login(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleOwner)

	repo.On("FindByEmail", mock.Anything, "owner@poolcrm.example.com").Return(admin, nil)
	repo.On("Save", mock.Anything, admin).Return(nil)

	svc, _ := newAuthService(repo)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@poolcrm.example.com",
		Password: "Sw1mming-pools",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "owner", result.Admin.Role)
	assert.NotNil(t, admin.LastLoginAt)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleStaff)

	repo.On("FindByEmail", mock.Anything, "owner@poolcrm.example.com").Return(admin, nil)

	svc, _ := newAuthService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@poolcrm.example.com",
		Password: "wrong-password1",
	})

	assertDomainCode(t, err, shared.CodeUnauthorized)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockAdminRepository)
	repo.On("FindByEmail", mock.Anything, "nobody@poolcrm.example.com").
		Return(nil, shared.ErrNotFound)

	svc, _ := newAuthService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@poolcrm.example.com",
		Password: "Sw1mming-pools",
	})

	// Same error as a wrong password so emails cannot be enumerated
	assertDomainCode(t, err, shared.CodeUnauthorized)
}

func TestAuthService_Login_DeactivatedAdmin(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleStaff)
	require.NoError(t, admin.Deactivate())

	repo.On("FindByEmail", mock.Anything, "owner@poolcrm.example.com").Return(admin, nil)

	svc, _ := newAuthService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@poolcrm.example.com",
		Password: "Sw1mming-pools",
	})

	assertDomainCode(t, err, shared.CodeForbidden)
}

// =============================================================================
// Refresh
// =============================================================================

func TestAuthService_Refresh(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleOwner)

	repo.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
	repo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("Save", mock.Anything, admin).Return(nil)

	svc, _ := newAuthService(repo)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    admin.Email,
		Password: "Sw1mming-pools",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The consumed refresh token is single-use
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assertDomainCode(t, err, shared.CodeUnauthorized)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	repo := new(MockAdminRepository)
	svc, _ := newAuthService(repo)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assertDomainCode(t, err, shared.CodeUnauthorized)
}

func TestAuthService_Refresh_DeactivatedAdmin(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleStaff)

	repo.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
	repo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("Save", mock.Anything, admin).Return(nil)

	svc, _ := newAuthService(repo)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    admin.Email,
		Password: "Sw1mming-pools",
	})
	require.NoError(t, err)

	require.NoError(t, admin.Deactivate())

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assertDomainCode(t, err, shared.CodeForbidden)
}

// =============================================================================
// Logout
// =============================================================================

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := new(MockAdminRepository)
	svc, blacklist := newAuthService(repo)

	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "staff@poolcrm.example.com",
		Role:    "staff",
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	revoked, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_LogoutAll(t *testing.T) {
	repo := new(MockAdminRepository)
	svc, blacklist := newAuthService(repo)

	adminID := uuid.New()
	issuedAt := time.Now().Add(-time.Minute)

	require.NoError(t, svc.LogoutAll(context.Background(), adminID))

	invalidated, err := blacklist.IsAdminTokenInvalidated(context.Background(), adminID.String(), issuedAt)
	require.NoError(t, err)
	assert.True(t, invalidated)
}

// =============================================================================
// ChangePassword
// =============================================================================

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleStaff)

	repo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
	repo.On("Save", mock.Anything, admin).Return(nil)

	svc, blacklist := newAuthService(repo)

	err := svc.ChangePassword(context.Background(), admin.ID, ChangePasswordRequest{
		CurrentPassword: "Sw1mming-pools",
		NewPassword:     "N3w-password-ok",
	})
	require.NoError(t, err)
	assert.True(t, admin.VerifyPassword("N3w-password-ok"))

	// Existing sessions are revoked
	invalidated, err := blacklist.IsAdminTokenInvalidated(
		context.Background(), admin.ID.String(), time.Now().Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, invalidated)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := new(MockAdminRepository)
	admin := newTestAdmin(t, identity.AdminRoleStaff)

	repo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)

	svc, _ := newAuthService(repo)

	err := svc.ChangePassword(context.Background(), admin.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-current1",
		NewPassword:     "N3w-password-ok",
	})
	assertDomainCode(t, err, shared.CodeValidation)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
