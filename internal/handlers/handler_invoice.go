package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService  portssvc.InvoiceSvcFacade
	companyService  portssvc.CompanyReaderSvc
	customerService portssvc.CustomerReaderSvc
	pdfRenderer     portssvc.PDFRenderer
}

func newInvoiceHandler(
	is portssvc.InvoiceSvcFacade,
	cs portssvc.CompanyReaderSvc,
	cust portssvc.CustomerReaderSvc,
	pdf portssvc.PDFRenderer,
) *invoiceHandler {
	return &invoiceHandler{
		invoiceService:  is,
		companyService:  cs,
		customerService: cust,
		pdfRenderer:     pdf,
	}
}

// registerInvoiceRoutes registers the invoice CRUD and lifecycle routes.
func registerInvoiceRoutes(
	rg *gin.RouterGroup,
	invoiceService portssvc.InvoiceSvcFacade,
	companyService portssvc.CompanyReaderSvc,
	customerService portssvc.CustomerReaderSvc,
	pdfRenderer portssvc.PDFRenderer,
) {
	h := newInvoiceHandler(invoiceService, companyService, customerService, pdfRenderer)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		// Cron-triggered sweep of open invoices past their due date.
		invoices.POST("/sweep-overdue", h.sweepOverdue)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.PUT("/:invoice_id", h.updateInvoice)
		invoices.DELETE("/:invoice_id", h.deleteInvoice)
		invoices.POST("/:invoice_id/send", h.sendInvoice)
		invoices.GET("/:invoice_id/payments", h.listPayments)
		invoices.POST("/:invoice_id/payments", h.recordPayment)
		invoices.POST("/:invoice_id/void", h.voidInvoice)
		invoices.GET("/:invoice_id/pdf", h.invoicePDF)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a draft invoice with a company-scoped number and server-computed totals.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Filter by status"
// @Param customerID query string false "Filter by customer"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	var params dto.ListInvoicesParams
	if !bindQuery(c, &params) {
		return
	}

	res, err := h.invoiceService.ListInvoices(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), companyID, c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "get invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates an invoice. Financial fields are only editable while in draft.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), req, userID)
	if err != nil {
		respondError(c, err, "update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete a draft invoice
// @Tags invoices
// @Param invoice_id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), userID); err != nil {
		respondError(c, err, "delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// sendInvoice godoc
// @Summary Send an invoice to the customer
// @Description Emails the invoice with its PDF and portal link, moving a draft to sent.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param send body dto.SendDocumentRequest false "Optional personal message"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id}/send [post]
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.SendDocumentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), req, userID)
	if err != nil {
		respondError(c, err, "send invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listPayments godoc
// @Summary List payments on an invoice
// @Tags invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id}/payments [get]
func (h *invoiceHandler) listPayments(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), companyID, c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// recordPayment godoc
// @Summary Record a manual payment
// @Description Records a cash, check or transfer payment against the invoice, rolling it to paid or partial.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), companyID, c.Param("invoice_id"), req, userID)
	if err != nil {
		respondError(c, err, "record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// voidInvoice godoc
// @Summary Void an unpaid invoice
// @Tags invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id}/void [post]
func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), userID)
	if err != nil {
		respondError(c, err, "void invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// invoicePDF godoc
// @Summary Download the invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{invoice_id}/pdf [get]
func (h *invoiceHandler) invoicePDF(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), companyID, c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "get invoice")
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "get company")
		return
	}
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), companyID, invoice.CustomerID)
	if err != nil {
		respondError(c, err, "get customer")
		return
	}

	pdf, err := h.pdfRenderer.RenderInvoice(company, customer, invoice)
	if err != nil {
		respondError(c, err, "render invoice PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// sweepOverdue godoc
// @Summary Mark overdue invoices
// @Description Moves the company's open invoices past their due date to overdue. Driven by an external scheduler.
// @Tags invoices
// @Produce json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /invoices/sweep-overdue [post]
func (h *invoiceHandler) sweepOverdue(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	count, err := h.invoiceService.SweepOverdue(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "sweep overdue invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"overdue": count})
}
