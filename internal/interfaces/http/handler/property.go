package handler

import (
	"github.com/gin-gonic/gin"

	appcrm "github.com/poolcrm/backend/internal/application/crm"
)

// PropertyHandler handles service-address endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *appcrm.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *appcrm.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	properties.POST("", h.Create)
	properties.GET("/:id", h.Get)
	properties.PUT("/:id", h.Update)
	properties.DELETE("/:id", h.Delete)

	rg.GET("/customers/:id/properties", h.ListByCustomer)
}

// Create godoc
//
//	@Summary	Add a property to a customer
//	@Tags		properties
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appcrm.CreatePropertyRequest	true	"Property details"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req appcrm.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, property)
}

// Get godoc
//
//	@Summary	Get a property
//	@Tags		properties
//	@Produce	json
//	@Param		id	path		string	true	"Property ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// ListByCustomer godoc
//
//	@Summary	List a customer's properties
//	@Tags		properties
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id}/properties [get]
func (h *PropertyHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	properties, err := h.propertyService.ListPropertiesByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, properties)
}

// Update godoc
//
//	@Summary	Update a property
//	@Tags		properties
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Property ID"	format(uuid)
//	@Param		request	body		appcrm.UpdatePropertyRequest	true	"Fields to change"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req appcrm.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Delete godoc
//
//	@Summary	Delete a property
//	@Tags		properties
//	@Param		id	path	string	true	"Property ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
