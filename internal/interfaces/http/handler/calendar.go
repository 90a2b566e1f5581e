package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/application/schedule"
)

// CalendarHandler handles service calendar endpoints
type CalendarHandler struct {
	BaseHandler
	scheduleService *schedule.Service
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(scheduleService *schedule.Service) *CalendarHandler {
	return &CalendarHandler{scheduleService: scheduleService}
}

// RegisterRoutes registers calendar routes
func (h *CalendarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	events.POST("", h.Create)
	events.GET("", h.List)
	events.GET("/:id", h.Get)
	events.PUT("/:id", h.Update)
	events.DELETE("/:id", h.Delete)
	events.POST("/:id/complete", h.Complete)
	events.POST("/:id/cancel", h.Cancel)
}

// Create godoc
//
//	@Summary	Schedule a calendar event
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		request	body		schedule.CreateEventRequest	true	"Event details"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events [post]
func (h *CalendarHandler) Create(c *gin.Context) {
	var req schedule.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.scheduleService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, event)
}

// Get godoc
//
//	@Summary	Get an event
//	@Tags		events
//	@Produce	json
//	@Param		id	path		string	true	"Event ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events/{id} [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.scheduleService.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// List godoc
//
//	@Summary	List calendar events
//	@Tags		events
//	@Produce	json
//	@Param		from		query		string	false	"Starts on or after (RFC 3339)"
//	@Param		to			query		string	false	"Starts before (RFC 3339)"
//	@Param		assigned_to	query		string	false	"Filter by assigned admin"	format(uuid)
//	@Param		customer_id	query		string	false	"Filter by customer"	format(uuid)
//	@Param		status		query		string	false	"Filter by status"	Enums(scheduled, completed, cancelled)
//	@Success	200			{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events [get]
func (h *CalendarHandler) List(c *gin.Context) {
	var filter schedule.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	events, err := h.scheduleService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, events)
}

// Update godoc
//
//	@Summary	Update an event
//	@Description	Version must match the last read; a stale version is a CONFLICT.
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Event ID"	format(uuid)
//	@Param		request	body		schedule.UpdateEventRequest	true	"Fields to change with the known version"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events/{id} [put]
func (h *CalendarHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req schedule.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.scheduleService.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Complete godoc
//
//	@Summary	Complete an event
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Event ID"	format(uuid)
//	@Param		request	body		schedule.TransitionEventRequest	true	"Known version"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events/{id}/complete [post]
func (h *CalendarHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req schedule.TransitionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.scheduleService.CompleteEvent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Cancel godoc
//
//	@Summary	Cancel an event
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Event ID"	format(uuid)
//	@Param		request	body		schedule.TransitionEventRequest	true	"Known version"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events/{id}/cancel [post]
func (h *CalendarHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req schedule.TransitionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	event, err := h.scheduleService.CancelEvent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Delete godoc
//
//	@Summary	Delete an event
//	@Tags		events
//	@Param		id	path	string	true	"Event ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/events/{id} [delete]
func (h *CalendarHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.scheduleService.DeleteEvent(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
