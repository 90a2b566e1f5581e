package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/application/identity"
)

// AdminHandler handles admin management endpoints. Routes are registered
// behind the owner-only middleware.
type AdminHandler struct {
	BaseHandler
	adminService *identity.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *identity.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes registers admin management routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admins := rg.Group("/admins")
	admins.POST("", h.Create)
	admins.GET("", h.List)
	admins.GET("/:id", h.Get)
	admins.PUT("/:id", h.Update)
	admins.POST("/:id/deactivate", h.Deactivate)
	admins.POST("/:id/activate", h.Activate)
}

// Create godoc
//
//	@Summary	Create an admin
//	@Tags		admins
//	@Accept		json
//	@Produce	json
//	@Param		request	body		identity.CreateAdminRequest	true	"Admin details"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/admins [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req identity.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, admin)
}

// Get godoc
//
//	@Summary	Get an admin
//	@Tags		admins
//	@Produce	json
//	@Param		id	path		string	true	"Admin ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/admins/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	admin, err := h.adminService.GetAdmin(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, admin)
}

// List godoc
//
//	@Summary	List admins
//	@Tags		admins
//	@Produce	json
//	@Param		role		query		string	false	"Filter by role"	Enums(owner, staff)
//	@Param		active		query		bool	false	"Filter by active state"
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	var filter identity.AdminListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.adminService.ListAdmins(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@Summary	Update an admin
//	@Description	Changes the admin's name or resets their password.
//	@Tags		admins
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Admin ID"	format(uuid)
//	@Param		request	body		identity.UpdateAdminRequest	true	"Fields to change"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/admins/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	var req identity.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	admin, err := h.adminService.UpdateAdmin(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, admin)
}

// Deactivate godoc
//
//	@Summary	Deactivate an admin
//	@Description	Disables the account and invalidates its sessions. Self-deactivation is rejected.
//	@Tags		admins
//	@Produce	json
//	@Param		id	path		string	true	"Admin ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Failure	409	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/admins/{id}/deactivate [post]
func (h *AdminHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	actorID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	admin, err := h.adminService.DeactivateAdmin(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, admin)
}

// Activate godoc
//
//	@Summary	Activate an admin
//	@Tags		admins
//	@Produce	json
//	@Param		id	path		string	true	"Admin ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/admins/{id}/activate [post]
func (h *AdminHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid admin ID")
		return
	}

	admin, err := h.adminService.ActivateAdmin(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, admin)
}
