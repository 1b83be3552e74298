package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// recurringInvoiceHandler handles recurring invoice schedules.
type recurringInvoiceHandler struct {
	recurringService portssvc.RecurringInvoiceSvcFacade
}

func newRecurringInvoiceHandler(rs portssvc.RecurringInvoiceSvcFacade) *recurringInvoiceHandler {
	return &recurringInvoiceHandler{recurringService: rs}
}

// registerRecurringInvoiceRoutes registers the schedule CRUD and run routes.
func registerRecurringInvoiceRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringInvoiceSvcFacade) {
	h := newRecurringInvoiceHandler(recurringService)

	schedules := rg.Group("/recurring-invoices")
	{
		schedules.POST("", h.createSchedule)
		schedules.GET("", h.listSchedules)
		// Cron-triggered generation of invoices from due schedules.
		schedules.POST("/run", h.runSchedules)
		schedules.GET("/:recurring_invoice_id", h.getSchedule)
		schedules.PUT("/:recurring_invoice_id", h.updateSchedule)
		schedules.DELETE("/:recurring_invoice_id", h.deleteSchedule)
	}
}

// createSchedule godoc
// @Summary Create a recurring invoice schedule
// @Tags recurring-invoices
// @Accept json
// @Produce json
// @Param schedule body dto.CreateRecurringInvoiceRequest true "Schedule details"
// @Success 201 {object} dto.RecurringInvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-invoices [post]
func (h *recurringInvoiceHandler) createSchedule(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateRecurringInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.recurringService.CreateRecurringInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create recurring invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecurringInvoiceResponse(schedule))
}

// listSchedules godoc
// @Summary List recurring invoice schedules
// @Tags recurring-invoices
// @Produce json
// @Success 200 {array} dto.RecurringInvoiceResponse
// @Security BearerAuth
// @Router /recurring-invoices [get]
func (h *recurringInvoiceHandler) listSchedules(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	schedules, err := h.recurringService.ListRecurringInvoices(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "list recurring invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecurringInvoicesResponse(schedules))
}

// getSchedule godoc
// @Summary Get a recurring invoice schedule
// @Tags recurring-invoices
// @Produce json
// @Param recurring_invoice_id path string true "Schedule ID"
// @Success 200 {object} dto.RecurringInvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-invoices/{recurring_invoice_id} [get]
func (h *recurringInvoiceHandler) getSchedule(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	schedule, err := h.recurringService.GetRecurringInvoiceByID(c.Request.Context(), companyID, c.Param("recurring_invoice_id"))
	if err != nil {
		respondError(c, err, "get recurring invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringInvoiceResponse(schedule))
}

// updateSchedule godoc
// @Summary Update a recurring invoice schedule
// @Tags recurring-invoices
// @Accept json
// @Produce json
// @Param recurring_invoice_id path string true "Schedule ID"
// @Param schedule body dto.UpdateRecurringInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.RecurringInvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-invoices/{recurring_invoice_id} [put]
func (h *recurringInvoiceHandler) updateSchedule(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateRecurringInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.recurringService.UpdateRecurringInvoice(c.Request.Context(), companyID, c.Param("recurring_invoice_id"), req, userID)
	if err != nil {
		respondError(c, err, "update recurring invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringInvoiceResponse(schedule))
}

// deleteSchedule godoc
// @Summary Delete a recurring invoice schedule
// @Tags recurring-invoices
// @Param recurring_invoice_id path string true "Schedule ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-invoices/{recurring_invoice_id} [delete]
func (h *recurringInvoiceHandler) deleteSchedule(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.recurringService.DeleteRecurringInvoice(c.Request.Context(), companyID, c.Param("recurring_invoice_id"), userID); err != nil {
		respondError(c, err, "delete recurring invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// runSchedules godoc
// @Summary Generate invoices from due schedules
// @Description Materializes a draft invoice for every due schedule and advances its next run date. Driven by an external scheduler.
// @Tags recurring-invoices
// @Produce json
// @Success 200 {object} dto.RunRecurringInvoicesResponse
// @Security BearerAuth
// @Router /recurring-invoices/run [post]
func (h *recurringInvoiceHandler) runSchedules(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	generated, err := h.recurringService.RunDueSchedules(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err, "run recurring invoices")
		return
	}

	invoices := make([]dto.InvoiceResponse, len(generated))
	for i := range generated {
		invoices[i] = dto.ToInvoiceResponse(&generated[i])
	}
	c.JSON(http.StatusOK, dto.RunRecurringInvoicesResponse{Generated: invoices, Count: len(invoices)})
}
