package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/identity"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	adminRepo  identity.AdminRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	adminRepo identity.AdminRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates an admin and returns a token pair.
// Wrong email and wrong password produce the same error so the endpoint
// does not leak which emails exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")
	}

	if !admin.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")
	}

	if !admin.CanLogin() {
		s.logger.Warn("Login attempt for deactivated admin",
			zap.String("admin_id", admin.ID.String()))
		return nil, shared.NewDomainError(shared.CodeForbidden, "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    string(admin.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate authentication tokens")
	}

	admin.RecordLogin()
	if err := s.adminRepo.Save(ctx, admin); err != nil {
		// The login already succeeded; losing the timestamp is acceptable
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Admin logged in",
		zap.String("admin_id", admin.ID.String()),
		zap.String("role", string(admin.Role)))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Admin:                 ToAdminResponse(admin),
	}, nil
}

// Refresh issues a fresh token pair from a valid refresh token. The admin is
// reloaded so a role change or deactivation since login takes effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if err := s.checkBlacklist(ctx, claims); err != nil {
		return nil, err
	}

	adminID, err := claims.GetAdminUUID()
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}

	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		s.logger.Warn("Refresh for unknown admin", zap.String("admin_id", claims.AdminID))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}

	if !admin.CanLogin() {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(refreshToken, admin.Email, string(admin.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}

	// The old refresh token is single-use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist used refresh token", zap.Error(err))
	}

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.NewDomainError(shared.CodeUnauthorized, "Invalid token")
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to log out")
	}

	s.logger.Info("Admin logged out", zap.String("admin_id", claims.AdminID))

	return nil
}

// LogoutAll revokes every outstanding token for the admin
func (s *AuthService) LogoutAll(ctx context.Context, adminID uuid.UUID) error {
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddAdminTokensToBlacklist(ctx, adminID.String(), ttl); err != nil {
		s.logger.Error("Failed to invalidate admin tokens", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to log out")
	}

	s.logger.Info("All sessions revoked", zap.String("admin_id", adminID.String()))

	return nil
}

// Me returns the authenticated admin's profile
func (s *AuthService) Me(ctx context.Context, adminID uuid.UUID) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, shared.NewNotFoundError("admin")
	}
	return ToAdminResponse(admin), nil
}

// ChangePassword changes the caller's password after verifying the current
// one, then revokes all outstanding sessions.
func (s *AuthService) ChangePassword(ctx context.Context, adminID uuid.UUID, req ChangePasswordRequest) error {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return shared.NewNotFoundError("admin")
	}

	if err := admin.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to save admin after password change", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to change password")
	}

	if err := s.blacklist.AddAdminTokensToBlacklist(ctx, adminID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("Admin password changed", zap.String("admin_id", adminID.String()))

	return nil
}

// checkBlacklist rejects revoked tokens and tokens issued before a
// force-logout of the admin
func (s *AuthService) checkBlacklist(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Token blacklist check failed", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to validate token")
	}
	if revoked {
		return shared.NewDomainError(shared.CodeUnauthorized, "Token has been revoked")
	}

	invalidated, err := s.blacklist.IsAdminTokenInvalidated(ctx, claims.AdminID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Admin invalidation check failed", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to validate token")
	}
	if invalidated {
		return shared.NewDomainError(shared.CodeUnauthorized, "Token has been revoked")
	}

	return nil
}

func mapTokenError(err error) *shared.DomainError {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingAdminID):
		return shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	default:
		return shared.NewDomainError(shared.CodeInternal, "Failed to validate refresh token")
	}
}
