package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
	"github.com/tradehive/tradehive_backend/internal/utils"
)

// portalHandler serves the customer portal: passwordless login and the
// customer's view of their own documents.
type portalHandler struct {
	portalService  portssvc.PortalSvc
	paymentService portssvc.PaymentSvcFacade
	cfg            *config.Config
}

func newPortalHandler(ps portssvc.PortalSvc, pay portssvc.PaymentSvcFacade, cfg *config.Config) *portalHandler {
	return &portalHandler{portalService: ps, paymentService: pay, cfg: cfg}
}

// registerPortalRoutes registers the public portal login routes and the
// session-guarded document routes. Login and checkout are rate limited by
// client IP since they are reachable without a staff account.
func registerPortalRoutes(r *gin.Engine, cfg *config.Config, portalService portssvc.PortalSvc, paymentService portssvc.PaymentSvcFacade) {
	h := newPortalHandler(portalService, paymentService, cfg)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(limitermemory.NewStore(), rate)

	portal := r.Group("/portal")
	{
		portal.POST("/login", middleware.RateLimit(ipLimiter), h.requestLogin)
		portal.POST("/verify", middleware.RateLimit(ipLimiter), h.verifyToken)

		session := portal.Group("", middleware.PortalAuthMiddleware(cfg.JWTSecret))
		{
			session.GET("/documents", h.listDocuments)
			session.GET("/estimates/:estimate_id", h.getEstimate)
			session.POST("/estimates/:estimate_id/respond", h.respondToEstimate)
			session.GET("/invoices/:invoice_id", h.getInvoice)
			session.POST("/invoices/:invoice_id/checkout", middleware.RateLimit(ipLimiter), h.createCheckout)
		}
	}
}

// portalSession resolves the verified portal customer. It answers 401
// itself when the session is missing.
func portalSession(c *gin.Context) (customerID, companyID string, ok bool) {
	customerID, companyID, ok = middleware.GetPortalCustomerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Portal session required"})
	}
	return customerID, companyID, ok
}

// requestLogin godoc
// @Summary Request a portal login link
// @Description Emails a single-use magic link when the address matches a customer. The response is identical either way.
// @Tags portal
// @Accept json
// @Produce json
// @Param login body dto.PortalLoginRequest true "Customer email"
// @Success 200 {object} dto.PortalLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /portal/login [post]
func (h *portalHandler) requestLogin(c *gin.Context) {
	var req dto.PortalLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.portalService.RequestLogin(c.Request.Context(), req); err != nil {
		respondError(c, err, "request portal login")
		return
	}
	c.JSON(http.StatusOK, dto.PortalLoginResponse{Message: "If that email matches a customer, a login link is on its way."})
}

// verifyToken godoc
// @Summary Redeem a portal login link
// @Description Exchanges a magic-link token for a portal session. The link is single use.
// @Tags portal
// @Accept json
// @Produce json
// @Param verify body dto.PortalVerifyRequest true "Magic-link token"
// @Success 200 {object} dto.PortalSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /portal/verify [post]
func (h *portalHandler) verifyToken(c *gin.Context) {
	var req dto.PortalVerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.portalService.VerifyToken(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "verify portal login")
		return
	}

	// Also set the session as a cookie so browser navigation works
	// without an Authorization header.
	c.SetCookie(utils.PortalSessionCookie, session.Token, int(h.cfg.PortalSessionDuration.Seconds()), "/portal", "", h.cfg.IsProduction, true)
	c.JSON(http.StatusOK, session)
}

// listDocuments godoc
// @Summary List the customer's documents
// @Tags portal
// @Produce json
// @Success 200 {object} dto.PortalDocumentsResponse
// @Failure 401 {object} ErrorResponse
// @Router /portal/documents [get]
func (h *portalHandler) listDocuments(c *gin.Context) {
	customerID, companyID, ok := portalSession(c)
	if !ok {
		return
	}

	docs, err := h.portalService.ListDocuments(c.Request.Context(), companyID, customerID)
	if err != nil {
		respondError(c, err, "list portal documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}

// getEstimate godoc
// @Summary View one of the customer's estimates
// @Description Retrieves the estimate, marking a sent estimate viewed.
// @Tags portal
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} ErrorResponse
// @Router /portal/estimates/{estimate_id} [get]
func (h *portalHandler) getEstimate(c *gin.Context) {
	customerID, companyID, ok := portalSession(c)
	if !ok {
		return
	}

	estimate, err := h.portalService.GetEstimate(c.Request.Context(), companyID, customerID, c.Param("estimate_id"))
	if err != nil {
		respondError(c, err, "get portal estimate")
		return
	}
	c.JSON(http.StatusOK, dto.ToEstimateResponse(estimate))
}

// respondToEstimate godoc
// @Summary Approve or reject an estimate
// @Description Records the customer's decision. Responding to an already decided estimate returns a conflict.
// @Tags portal
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param response body dto.RespondToEstimateRequest true "approved or rejected"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /portal/estimates/{estimate_id}/respond [post]
func (h *portalHandler) respondToEstimate(c *gin.Context) {
	customerID, companyID, ok := portalSession(c)
	if !ok {
		return
	}

	var req dto.RespondToEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	estimate, err := h.portalService.RespondToEstimate(c.Request.Context(), companyID, customerID, c.Param("estimate_id"), req)
	if err != nil {
		respondError(c, err, "respond to estimate")
		return
	}
	c.JSON(http.StatusOK, dto.ToEstimateResponse(estimate))
}

// getInvoice godoc
// @Summary View one of the customer's invoices
// @Description Retrieves the invoice, marking a sent invoice viewed.
// @Tags portal
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /portal/invoices/{invoice_id} [get]
func (h *portalHandler) getInvoice(c *gin.Context) {
	customerID, companyID, ok := portalSession(c)
	if !ok {
		return
	}

	invoice, err := h.portalService.GetInvoice(c.Request.Context(), companyID, customerID, c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "get portal invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// createCheckout godoc
// @Summary Pay an invoice online
// @Description Creates a hosted checkout session for the invoice's balance due.
// @Tags portal
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.CreateCheckoutResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /portal/invoices/{invoice_id}/checkout [post]
func (h *portalHandler) createCheckout(c *gin.Context) {
	customerID, companyID, ok := portalSession(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoice_id")

	// Scope check: the invoice must belong to this customer.
	if _, err := h.portalService.GetInvoice(c.Request.Context(), companyID, customerID, invoiceID); err != nil {
		respondError(c, err, "get portal invoice")
		return
	}

	session, err := h.paymentService.CreateCheckout(c.Request.Context(), companyID, dto.CreateCheckoutRequest{InvoiceID: invoiceID}, customerID)
	if err != nil {
		respondError(c, err, "create checkout session")
		return
	}
	c.JSON(http.StatusOK, session)
}
