package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/application/communication"
)

// CommunicationHandler handles communication log endpoints
type CommunicationHandler struct {
	BaseHandler
	commService *communication.Service
}

// NewCommunicationHandler creates a new communication handler
func NewCommunicationHandler(commService *communication.Service) *CommunicationHandler {
	return &CommunicationHandler{commService: commService}
}

// RegisterRoutes registers communication routes
func (h *CommunicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comms := rg.Group("/communications")
	comms.POST("", h.Log)
	comms.GET("/search", h.Search)
	comms.GET("/:id", h.Get)
	comms.PUT("/:id", h.Update)
	comms.DELETE("/:id", h.Delete)

	rg.GET("/customers/:id/communications", h.Timeline)
}

// Log godoc
//
//	@Summary	Log a communication
//	@Description	Records a call, text or email against a customer, attributed to the caller.
//	@Tags		communications
//	@Accept		json
//	@Produce	json
//	@Param		request	body		communication.LogCommunicationRequest	true	"Communication details"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/communications [post]
func (h *CommunicationHandler) Log(c *gin.Context) {
	loggedBy, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req communication.LogCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	comm, err := h.commService.Log(c.Request.Context(), loggedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comm)
}

// Get godoc
//
//	@Summary	Get a communication
//	@Tags		communications
//	@Produce	json
//	@Param		id	path		string	true	"Communication ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/communications/{id} [get]
func (h *CommunicationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid communication ID")
		return
	}

	comm, err := h.commService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comm)
}

// Timeline godoc
//
//	@Summary	A customer's communication timeline
//	@Description	Newest first. Pass the next_cursor from a previous page to continue.
//	@Tags		communications
//	@Produce	json
//	@Param		id			path		string	true	"Customer ID"	format(uuid)
//	@Param		cursor		query		string	false	"Opaque page cursor"
//	@Param		limit		query		int		false	"Page size"
//	@Param		type		query		string	false	"Filter by type"	Enums(call, text, email)
//	@Param		direction	query		string	false	"Filter by direction"	Enums(inbound, outbound)
//	@Param		date_from	query		string	false	"Occurred on or after (RFC 3339)"
//	@Param		date_to		query		string	false	"Occurred before (RFC 3339)"
//	@Success	200			{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id}/communications [get]
func (h *CommunicationHandler) Timeline(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req communication.ListCommunicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.commService.Timeline(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, page)
}

// Search godoc
//
//	@Summary	Search communications across customers
//	@Tags		communications
//	@Produce	json
//	@Param		q		query		string	true	"Summary text to match"
//	@Param		limit	query		int		false	"Maximum hits"
//	@Success	200		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/communications/search [get]
func (h *CommunicationHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = parsed
	}

	hits, err := h.commService.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hits)
}

// Update godoc
//
//	@Summary	Correct a logged communication
//	@Tags		communications
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string										true	"Communication ID"	format(uuid)
//	@Param		request	body		communication.UpdateCommunicationRequest	true	"Corrected details"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/communications/{id} [put]
func (h *CommunicationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid communication ID")
		return
	}

	var req communication.UpdateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	comm, err := h.commService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comm)
}

// Delete godoc
//
//	@Summary	Delete a communication
//	@Tags		communications
//	@Param		id	path	string	true	"Communication ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/communications/{id} [delete]
func (h *CommunicationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid communication ID")
		return
	}

	if err := h.commService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
