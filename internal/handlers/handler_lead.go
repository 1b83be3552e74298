package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// leadHandler handles HTTP requests related to leads.
type leadHandler struct {
	leadService portssvc.LeadSvcFacade
}

func newLeadHandler(ls portssvc.LeadSvcFacade) *leadHandler {
	return &leadHandler{leadService: ls}
}

// registerLeadRoutes registers the lead CRUD and conversion routes.
func registerLeadRoutes(rg *gin.RouterGroup, leadService portssvc.LeadSvcFacade) {
	h := newLeadHandler(leadService)

	leads := rg.Group("/leads")
	{
		leads.POST("", h.createLead)
		leads.GET("", h.listLeads)
		leads.GET("/:lead_id", h.getLead)
		leads.PUT("/:lead_id", h.updateLead)
		leads.DELETE("/:lead_id", h.deleteLead)
		leads.POST("/:lead_id/convert", h.convertLead)
	}
}

// createLead godoc
// @Summary Create a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body dto.CreateLeadRequest true "Lead details"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads [post]
func (h *leadHandler) createLead(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create lead")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeadResponse(lead))
}

// listLeads godoc
// @Summary List leads
// @Tags leads
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ListLeadsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads [get]
func (h *leadHandler) listLeads(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	var params dto.ListLeadsParams
	if !bindQuery(c, &params) {
		return
	}

	res, err := h.leadService.ListLeads(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "list leads")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getLead godoc
// @Summary Get a lead
// @Tags leads
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Success 200 {object} dto.LeadResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{lead_id} [get]
func (h *leadHandler) getLead(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	lead, err := h.leadService.GetLeadByID(c.Request.Context(), companyID, c.Param("lead_id"))
	if err != nil {
		respondError(c, err, "get lead")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// updateLead godoc
// @Summary Update a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Param lead body dto.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} dto.LeadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{lead_id} [put]
func (h *leadHandler) updateLead(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), companyID, c.Param("lead_id"), req, userID)
	if err != nil {
		respondError(c, err, "update lead")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// deleteLead godoc
// @Summary Delete a lead
// @Tags leads
// @Param lead_id path string true "Lead ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{lead_id} [delete]
func (h *leadHandler) deleteLead(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), companyID, c.Param("lead_id"), userID); err != nil {
		respondError(c, err, "delete lead")
		return
	}
	c.Status(http.StatusNoContent)
}

// convertLead godoc
// @Summary Convert a lead to a customer
// @Description Creates a customer from the lead and marks it won. Converting twice returns a conflict.
// @Tags leads
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Success 201 {object} dto.ConvertLeadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{lead_id}/convert [post]
func (h *leadHandler) convertLead(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	lead, customer, err := h.leadService.ConvertLead(c.Request.Context(), companyID, c.Param("lead_id"), userID)
	if err != nil {
		respondError(c, err, "convert lead")
		return
	}
	c.JSON(http.StatusCreated, dto.ConvertLeadResponse{
		Lead:     dto.ToLeadResponse(lead),
		Customer: dto.ToCustomerResponse(customer),
	})
}
