package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/application/identity"
	"github.com/poolcrm/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterPublicRoutes registers the unauthenticated auth endpoints
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
}

// RegisterProtectedRoutes registers the auth endpoints that require a session
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/logout", h.Logout)
	auth.POST("/logout-all", h.LogoutAll)
	auth.GET("/me", h.Me)
	auth.POST("/change-password", h.ChangePassword)
}

// Login godoc
//
//	@Summary	Log in
//	@Description	Issues an access and refresh token pair for valid credentials.
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		identity.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.Response
//	@Failure	401		{object}	dto.Response
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh godoc
//
//	@Summary	Refresh tokens
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		identity.RefreshRequest	true	"Refresh token"
//	@Success	200		{object}	dto.Response
//	@Failure	401		{object}	dto.Response
//	@Router		/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
//
//	@Summary	Log out
//	@Description	Revokes the presented access token for the rest of its lifetime.
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// LogoutAll godoc
//
//	@Summary	Log out everywhere
//	@Description	Invalidates every session of the current admin.
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), adminID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "All sessions invalidated"})
}

// Me godoc
//
//	@Summary	Current admin profile
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	admin, err := h.authService.Me(c.Request.Context(), adminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, admin)
}

// ChangePassword godoc
//
//	@Summary	Change password
//	@Description	Changes the current admin's password and invalidates existing sessions.
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		identity.ChangePasswordRequest	true	"Current and new password"
//	@Success	200		{object}	dto.Response
//	@Failure	401		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), adminID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed"})
}
