package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// estimateHandler handles HTTP requests related to estimates.
type estimateHandler struct {
	estimateService portssvc.EstimateSvcFacade
	companyService  portssvc.CompanyReaderSvc
	customerService portssvc.CustomerReaderSvc
	pdfRenderer     portssvc.PDFRenderer
}

func newEstimateHandler(
	es portssvc.EstimateSvcFacade,
	cs portssvc.CompanyReaderSvc,
	cust portssvc.CustomerReaderSvc,
	pdf portssvc.PDFRenderer,
) *estimateHandler {
	return &estimateHandler{
		estimateService: es,
		companyService:  cs,
		customerService: cust,
		pdfRenderer:     pdf,
	}
}

// registerEstimateRoutes registers the estimate CRUD and lifecycle routes.
func registerEstimateRoutes(
	rg *gin.RouterGroup,
	estimateService portssvc.EstimateSvcFacade,
	companyService portssvc.CompanyReaderSvc,
	customerService portssvc.CustomerReaderSvc,
	pdfRenderer portssvc.PDFRenderer,
) {
	h := newEstimateHandler(estimateService, companyService, customerService, pdfRenderer)

	estimates := rg.Group("/estimates")
	{
		estimates.POST("", h.createEstimate)
		estimates.GET("", h.listEstimates)
		// Cron-triggered sweep of open estimates past validUntil.
		estimates.POST("/expire", h.expireEstimates)
		estimates.GET("/:estimate_id", h.getEstimate)
		estimates.PUT("/:estimate_id", h.updateEstimate)
		estimates.DELETE("/:estimate_id", h.deleteEstimate)
		estimates.POST("/:estimate_id/send", h.sendEstimate)
		estimates.POST("/:estimate_id/convert", h.convertToInvoice)
		estimates.GET("/:estimate_id/pdf", h.estimatePDF)
	}
}

// createEstimate godoc
// @Summary Create an estimate
// @Description Creates a draft estimate with a company-scoped number and server-computed totals.
// @Tags estimates
// @Accept json
// @Produce json
// @Param estimate body dto.CreateEstimateRequest true "Estimate details"
// @Success 201 {object} dto.EstimateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates [post]
func (h *estimateHandler) createEstimate(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create estimate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEstimateResponse(estimate))
}

// listEstimates godoc
// @Summary List estimates
// @Tags estimates
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Filter by status"
// @Param customerID query string false "Filter by customer"
// @Success 200 {object} dto.ListEstimatesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates [get]
func (h *estimateHandler) listEstimates(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	var params dto.ListEstimatesParams
	if !bindQuery(c, &params) {
		return
	}

	res, err := h.estimateService.ListEstimates(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "list estimates")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getEstimate godoc
// @Summary Get an estimate
// @Tags estimates
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates/{estimate_id} [get]
func (h *estimateHandler) getEstimate(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	estimate, err := h.estimateService.GetEstimateByID(c.Request.Context(), companyID, c.Param("estimate_id"))
	if err != nil {
		respondError(c, err, "get estimate")
		return
	}
	c.JSON(http.StatusOK, dto.ToEstimateResponse(estimate))
}

// updateEstimate godoc
// @Summary Update an estimate
// @Description Updates an estimate. Financial fields are only editable while in draft.
// @Tags estimates
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param estimate body dto.UpdateEstimateRequest true "Fields to update"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates/{estimate_id} [put]
func (h *estimateHandler) updateEstimate(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	estimate, err := h.estimateService.UpdateEstimate(c.Request.Context(), companyID, c.Param("estimate_id"), req, userID)
	if err != nil {
		respondError(c, err, "update estimate")
		return
	}
	c.JSON(http.StatusOK, dto.ToEstimateResponse(estimate))
}

// deleteEstimate godoc
// @Summary Delete a draft estimate
// @Tags estimates
// @Param estimate_id path string true "Estimate ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates/{estimate_id} [delete]
func (h *estimateHandler) deleteEstimate(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.estimateService.DeleteEstimate(c.Request.Context(), companyID, c.Param("estimate_id"), userID); err != nil {
		respondError(c, err, "delete estimate")
		return
	}
	c.Status(http.StatusNoContent)
}

// sendEstimate godoc
// @Summary Send an estimate to the customer
// @Description Emails the estimate with its PDF and portal link, moving a draft to sent.
// @Tags estimates
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param send body dto.SendDocumentRequest false "Optional personal message"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates/{estimate_id}/send [post]
func (h *estimateHandler) sendEstimate(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.SendDocumentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	estimate, err := h.estimateService.SendEstimate(c.Request.Context(), companyID, c.Param("estimate_id"), req, userID)
	if err != nil {
		respondError(c, err, "send estimate")
		return
	}
	c.JSON(http.StatusOK, dto.ToEstimateResponse(estimate))
}

// convertToInvoice godoc
// @Summary Convert an estimate to an invoice
// @Description Creates a draft invoice from the estimate, preserving its financials. Converting an open estimate implicitly approves it; converting twice returns a conflict.
// @Tags estimates
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates/{estimate_id}/convert [post]
func (h *estimateHandler) convertToInvoice(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	invoice, err := h.estimateService.ConvertToInvoice(c.Request.Context(), companyID, c.Param("estimate_id"), userID)
	if err != nil {
		respondError(c, err, "convert estimate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// estimatePDF godoc
// @Summary Download the estimate PDF
// @Tags estimates
// @Produce application/pdf
// @Param estimate_id path string true "Estimate ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /estimates/{estimate_id}/pdf [get]
func (h *estimateHandler) estimatePDF(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	estimate, err := h.estimateService.GetEstimateByID(c.Request.Context(), companyID, c.Param("estimate_id"))
	if err != nil {
		respondError(c, err, "get estimate")
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "get company")
		return
	}
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), companyID, estimate.CustomerID)
	if err != nil {
		respondError(c, err, "get customer")
		return
	}

	pdf, err := h.pdfRenderer.RenderEstimate(company, customer, estimate)
	if err != nil {
		respondError(c, err, "render estimate PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=estimate-%s.pdf", estimate.EstimateNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// expireEstimates godoc
// @Summary Expire stale open estimates
// @Description Moves the company's open estimates past their validUntil to expired. Driven by an external scheduler.
// @Tags estimates
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /estimates/expire [post]
func (h *estimateHandler) expireEstimates(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	count, err := h.estimateService.ExpireEstimates(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "expire estimates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": count})
}
