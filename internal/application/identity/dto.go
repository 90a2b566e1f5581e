package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/identity"
)

// =============================================================================
// Auth DTOs
// =============================================================================

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResult represents a successful login or token refresh
type LoginResult struct {
	AccessToken           string         `json:"access_token"`
	RefreshToken          string         `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time      `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time      `json:"refresh_token_expires_at"`
	TokenType             string         `json:"token_type"`
	Admin                 *AdminResponse `json:"admin,omitempty"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// =============================================================================
// Admin DTOs
// =============================================================================

// CreateAdminRequest represents a request to create a new admin
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,oneof=owner staff"`
}

// UpdateAdminRequest represents a request to update an admin.
// Password, when set, is an owner reset without the old password.
type UpdateAdminRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// AdminListFilter represents filter options for the admin list
type AdminListFilter struct {
	Keyword  string `form:"keyword"`
	Role     string `form:"role" binding:"omitempty,oneof=owner staff"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AdminResponse represents an admin in API responses
type AdminResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// AdminListResult is a paginated admin listing
type AdminListResult struct {
	Items    []*AdminResponse `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ToAdminResponse converts a domain admin to an API response
func ToAdminResponse(admin *identity.Admin) *AdminResponse {
	return &AdminResponse{
		ID:          admin.ID,
		Email:       admin.Email,
		FullName:    admin.FullName,
		Role:        string(admin.Role),
		Active:      admin.Active,
		LastLoginAt: admin.LastLoginAt,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
		Version:     admin.Version,
	}
}
