package handler

import (
	"github.com/gin-gonic/gin"

	appcrm "github.com/poolcrm/backend/internal/application/crm"
)

// PoolHandler handles pool endpoints
type PoolHandler struct {
	BaseHandler
	poolService *appcrm.PoolService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(poolService *appcrm.PoolService) *PoolHandler {
	return &PoolHandler{poolService: poolService}
}

// RegisterRoutes registers pool routes
func (h *PoolHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pools := rg.Group("/pools")
	pools.POST("", h.Create)
	pools.GET("/:id", h.Get)
	pools.PUT("/:id", h.Update)
	pools.DELETE("/:id", h.Delete)

	rg.GET("/properties/:id/pool", h.GetByProperty)
}

// Create godoc
//
//	@Summary	Add a pool to a property
//	@Description	A property holds at most one pool; a second create is a CONFLICT.
//	@Tags		pools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appcrm.CreatePoolRequest	true	"Pool details"
//	@Success	201		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/pools [post]
func (h *PoolHandler) Create(c *gin.Context) {
	var req appcrm.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pool, err := h.poolService.CreatePool(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, pool)
}

// Get godoc
//
//	@Summary	Get a pool
//	@Tags		pools
//	@Produce	json
//	@Param		id	path		string	true	"Pool ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/pools/{id} [get]
func (h *PoolHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid pool ID")
		return
	}

	pool, err := h.poolService.GetPool(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pool)
}

// GetByProperty godoc
//
//	@Summary	Get the pool at a property
//	@Tags		pools
//	@Produce	json
//	@Param		id	path		string	true	"Property ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/properties/{id}/pool [get]
func (h *PoolHandler) GetByProperty(c *gin.Context) {
	propertyID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	pool, err := h.poolService.GetPoolByProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pool)
}

// Update godoc
//
//	@Summary	Update a pool
//	@Tags		pools
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Pool ID"	format(uuid)
//	@Param		request	body		appcrm.UpdatePoolRequest	true	"Fields to change"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/pools/{id} [put]
func (h *PoolHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid pool ID")
		return
	}

	var req appcrm.UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pool, err := h.poolService.UpdatePool(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pool)
}

// Delete godoc
//
//	@Summary	Delete a pool
//	@Tags		pools
//	@Param		id	path	string	true	"Pool ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/pools/{id} [delete]
func (h *PoolHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid pool ID")
		return
	}

	if err := h.poolService.DeletePool(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
