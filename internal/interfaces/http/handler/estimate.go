package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/application/estimate"
)

// EstimateHandler handles estimate endpoints
type EstimateHandler struct {
	BaseHandler
	estimateService *estimate.Service
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimateService *estimate.Service) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// RegisterRoutes registers estimate routes
func (h *EstimateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	estimates := rg.Group("/estimates")
	estimates.POST("", h.Create)
	estimates.GET("", h.List)
	estimates.GET("/:id", h.Get)
	estimates.PUT("/:id", h.Update)
	estimates.DELETE("/:id", h.Delete)

	estimates.POST("/:id/items", h.AddItem)
	estimates.PUT("/:id/items/:itemId", h.UpdateItem)
	estimates.DELETE("/:id/items/:itemId", h.RemoveItem)

	estimates.POST("/:id/send", h.Send)
	estimates.POST("/:id/finalize", h.MarkInternalFinal)
	estimates.POST("/:id/convert", h.Convert)
	estimates.POST("/:id/decline", h.Decline)

	estimates.GET("/stats", h.Stats)
}

// Stats godoc
//
//	@Summary	Estimate counts by status
//	@Tags		estimates
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/stats [get]
func (h *EstimateHandler) Stats(c *gin.Context) {
	counts, err := h.estimateService.CountByStatus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}

func parseItemIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
//
//	@Summary	Draft an estimate
//	@Description	Allocates the next EST-<year>-<seq> number and totals any initial items.
//	@Tags		estimates
//	@Accept		json
//	@Produce	json
//	@Param		request	body		estimate.CreateEstimateRequest	true	"Estimate details"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	var req estimate.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	est, err := h.estimateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, est)
}

// Get godoc
//
//	@Summary	Get an estimate
//	@Tags		estimates
//	@Produce	json
//	@Param		id	path		string	true	"Estimate ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id} [get]
func (h *EstimateHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	est, err := h.estimateService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, est)
}

// List godoc
//
//	@Summary	List estimates
//	@Tags		estimates
//	@Produce	json
//	@Param		status		query		string	false	"Filter by status"	Enums(draft, sent, accepted, declined)
//	@Param		customer_id	query		string	false	"Filter by customer"	format(uuid)
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates [get]
func (h *EstimateHandler) List(c *gin.Context) {
	var filter estimate.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.estimateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@Summary	Update a draft estimate
//	@Tags		estimates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Estimate ID"	format(uuid)
//	@Param		request	body		estimate.UpdateEstimateRequest	true	"Header fields"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id} [put]
func (h *EstimateHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req estimate.UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	est, err := h.estimateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, est)
}

// AddItem godoc
//
//	@Summary	Add a line item
//	@Tags		estimates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Estimate ID"	format(uuid)
//	@Param		request	body		estimate.ItemInput	true	"Line item"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/items [post]
func (h *EstimateHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req estimate.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	est, err := h.estimateService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, est)
}

// UpdateItem godoc
//
//	@Summary	Replace a line item
//	@Tags		estimates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Estimate ID"	format(uuid)
//	@Param		itemId	path		string				true	"Item ID"		format(uuid)
//	@Param		request	body		estimate.ItemInput	true	"Line item"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/items/{itemId} [put]
func (h *EstimateHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}
	itemID, ok := parseItemIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req estimate.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	est, err := h.estimateService.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, est)
}

// RemoveItem godoc
//
//	@Summary	Remove a line item
//	@Tags		estimates
//	@Produce	json
//	@Param		id		path		string	true	"Estimate ID"	format(uuid)
//	@Param		itemId	path		string	true	"Item ID"		format(uuid)
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/items/{itemId} [delete]
func (h *EstimateHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}
	itemID, ok := parseItemIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	est, err := h.estimateService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, est)
}

// Send godoc
//
//	@Summary	Send an estimate
//	@Description	Marks the estimate sent and emails it. The transition persists even when delivery fails; the response carries the delivery outcome.
//	@Tags		estimates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Estimate ID"	format(uuid)
//	@Param		request	body		estimate.SendEstimateRequest	true	"Recipient override"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/send [post]
func (h *EstimateHandler) Send(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req estimate.SendEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BindError(c, err)
		return
	}

	result, err := h.estimateService.Send(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkInternalFinal godoc
//
//	@Summary	Finalize an estimate internally
//	@Description	Locks the estimate without emailing it.
//	@Tags		estimates
//	@Produce	json
//	@Param		id	path		string	true	"Estimate ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Failure	409	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/finalize [post]
func (h *EstimateHandler) MarkInternalFinal(c *gin.Context) {
	h.transition(c, h.estimateService.MarkInternalFinal)
}

// Convert godoc
//
//	@Summary	Convert an estimate
//	@Description	Records acceptance and promotes a lead customer to active.
//	@Tags		estimates
//	@Produce	json
//	@Param		id	path		string	true	"Estimate ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Failure	409	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/convert [post]
func (h *EstimateHandler) Convert(c *gin.Context) {
	h.transition(c, h.estimateService.Convert)
}

// Decline godoc
//
//	@Summary	Decline an estimate
//	@Tags		estimates
//	@Produce	json
//	@Param		id	path		string	true	"Estimate ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Failure	409	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id}/decline [post]
func (h *EstimateHandler) Decline(c *gin.Context) {
	h.transition(c, h.estimateService.Decline)
}

// Delete godoc
//
//	@Summary	Delete a draft estimate
//	@Tags		estimates
//	@Param		id	path	string	true	"Estimate ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Failure	409	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/estimates/{id} [delete]
func (h *EstimateHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	if err := h.estimateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *EstimateHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*estimate.EstimateResponse, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	est, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, est)
}
