package handler

import (
	"github.com/gin-gonic/gin"

	appcrm "github.com/poolcrm/backend/internal/application/crm"
)

// CustomerHandler handles customer CRUD endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *appcrm.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *appcrm.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers customer routes. The ownerOnly middleware
// guards hard deletion.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup, ownerOnly gin.HandlerFunc) {
	customers := rg.Group("/customers")
	customers.POST("", h.Create)
	customers.GET("", h.List)
	customers.GET("/:id", h.Get)
	customers.PUT("/:id", h.Update)
	customers.DELETE("/:id", h.Delete)
	customers.POST("/:id/restore", h.Restore)
	customers.DELETE("/:id/purge", ownerOnly, h.HardDelete)
	customers.GET("/stats", h.Stats)
}

// Stats godoc
//
//	@Summary	Customer counts grouped by status
//	@Tags		customers
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/stats [get]
func (h *CustomerHandler) Stats(c *gin.Context) {
	counts, err := h.customerService.CountCustomersByStatus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}

// Create godoc
//
//	@Summary	Create a customer
//	@Description	Rejects a phone number already held by a live customer with DUPLICATE_PHONE.
//	@Tags		customers
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appcrm.CreateCustomerRequest	true	"Customer details"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req appcrm.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// Get godoc
//
//	@Summary	Get a customer
//	@Tags		customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List godoc
//
//	@Summary	List customers
//	@Tags		customers
//	@Produce	json
//	@Param		search		query		string	false	"Match against name, phone or email"
//	@Param		status		query		string	false	"Filter by status"	Enums(lead, active, inactive)
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter appcrm.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@Summary	Update a customer
//	@Tags		customers
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Customer ID"	format(uuid)
//	@Param		request	body		appcrm.UpdateCustomerRequest	true	"Fields to change"
//	@Success	200		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appcrm.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete godoc
//
//	@Summary	Soft-delete a customer
//	@Tags		customers
//	@Param		id	path	string	true	"Customer ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore godoc
//
//	@Summary	Restore a soft-deleted customer
//	@Description	Refused when the phone number was reused by another customer in the meantime.
//	@Tags		customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"	format(uuid)
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Failure	409	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id}/restore [post]
func (h *CustomerHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.RestoreCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// HardDelete godoc
//
//	@Summary	Permanently delete a customer
//	@Description	Removes the customer and all dependent rows. Owner role required.
//	@Tags		customers
//	@Param		id	path	string	true	"Customer ID"	format(uuid)
//	@Success	204
//	@Failure	403	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/customers/{id}/purge [delete]
func (h *CustomerHandler) HardDelete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.HardDeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
