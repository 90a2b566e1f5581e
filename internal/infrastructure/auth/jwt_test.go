package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolcrm/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars!!",
		RefreshSecret:          "test-refresh-secret-at-least-32-chars!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "poolcrm-test",
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	adminID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: adminID,
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.Before(pair.RefreshTokenExpiresAt))
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	adminID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: adminID,
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, adminID.String(), claims.AdminID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.GetAdminUUID()
	require.NoError(t, err)
	assert.Equal(t, adminID, parsed)
}

func TestJWTService_ValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	// Token type mismatch, and the refresh token is signed with a different secret
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	require.Error(t, err)
}

func TestJWTService_ValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	require.Error(t, err)
}

func TestJWTService_ValidateAccessToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-secret-32chars!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "poolcrm-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars!!",
		AccessTokenExpiration:  -1 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "poolcrm-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	adminID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: adminID,
		Email:   "owner@example.com",
		Role:    "staff",
	})
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "renamed@example.com", "owner")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, adminID.String(), claims.AdminID)
	assert.Equal(t, "renamed@example.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestJWTService_RefreshTokenPair_RejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken, "owner@example.com", "owner")
	require.Error(t, err)
}

func TestJWTService_RefreshSecretFallsBackToAccessSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "only-one-secret-configured-32-chars!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "poolcrm-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AdminID: uuid.New(),
		Email:   "owner@example.com",
		Role:    "owner",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
