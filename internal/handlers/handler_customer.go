package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers the customer CRUD routes.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customer_id", h.getCustomer)
		customers.PUT("/:customer_id", h.updateCustomer)
		customers.DELETE("/:customer_id", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param search query string false "Match on name, email or phone"
// @Param tag query string false "Filter by tag"
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	var params dto.ListCustomersParams
	if !bindQuery(c, &params) {
		return
	}

	res, err := h.customerService.ListCustomers(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), companyID, c.Param("customer_id"))
	if err != nil {
		respondError(c, err, "get customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), companyID, c.Param("customer_id"), req, userID)
	if err != nil {
		respondError(c, err, "update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Tags customers
// @Param customer_id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), companyID, c.Param("customer_id"), userID); err != nil {
		respondError(c, err, "delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}
