package handler

import (
	"github.com/gin-gonic/gin"

	appcrm "github.com/poolcrm/backend/internal/application/crm"
)

// NoteHandler handles customer note endpoints
type NoteHandler struct {
	BaseHandler
	noteService *appcrm.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *appcrm.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// RegisterRoutes registers note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	notes.POST("", h.Create)
	notes.GET("/:id", h.Get)
	notes.PUT("/:id", h.Update)
	notes.DELETE("/:id", h.Delete)

	rg.GET("/customers/:id/notes", h.ListByCustomer)
}

// Create godoc
//
//	@Summary	Add a note to a customer
//	@Tags		notes
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appcrm.CreateNoteRequest	true	"Note body and pin flag"
//	@Success	201		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	authorID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcrm.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// Get godoc
//
//	@Summary	Get a note
//	@Tags		notes
//	@Produce	json
//	@Param		id	path		string	true	"Note ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// ListByCustomer godoc
//
//	@Summary	List a customer's notes
//	@Description	Pinned notes come first, then newest.
//	@Tags		notes
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id}/notes [get]
func (h *NoteHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	notes, err := h.noteService.ListNotesByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notes)
}

// Update godoc
//
//	@Summary	Update a note
//	@Tags		notes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Note ID"	format(uuid)
//	@Param		request	body		appcrm.UpdateNoteRequest	true	"Fields to change"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	var req appcrm.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Delete godoc
//
//	@Summary	Delete a note
//	@Tags		notes
//	@Param		id	path	string	true	"Note ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
