package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
)

// paymentHandler handles checkout creation and processor webhooks.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers the staff-facing checkout route.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("/checkout", h.createCheckout)
		payments.POST("/connect", h.connectOnboarding)
		payments.GET("/connect", h.connectDashboard)
	}
}

// registerWebhookRoutes registers the processor webhook receiver. The
// route is public; authenticity comes from the event signature.
func registerWebhookRoutes(r *gin.Engine, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)
	r.POST("/webhooks/stripe", h.stripeWebhook)
}

// createCheckout godoc
// @Summary Create a checkout session for an invoice
// @Description Builds a hosted checkout link for the invoice's balance due, for sharing with the customer.
// @Tags payments
// @Accept json
// @Produce json
// @Param checkout body dto.CreateCheckoutRequest true "Invoice to collect"
// @Success 200 {object} dto.CreateCheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/checkout [post]
func (h *paymentHandler) createCheckout(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.paymentService.CreateCheckout(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create checkout session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// connectOnboarding godoc
// @Summary Start Stripe Connect onboarding
// @Description Gets or creates the company's connected Stripe account and returns a hosted onboarding link.
// @Tags payments
// @Produce json
// @Success 200 {object} dto.ConnectLinkResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/connect [post]
func (h *paymentHandler) connectOnboarding(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	link, err := h.paymentService.CreateOnboardingLink(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err, "start connect onboarding")
		return
	}
	c.JSON(http.StatusOK, link)
}

// connectDashboard godoc
// @Summary Get a Stripe dashboard login link
// @Description Returns an express dashboard login link for the company's connected Stripe account.
// @Tags payments
// @Produce json
// @Success 200 {object} dto.ConnectLinkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/connect [get]
func (h *paymentHandler) connectDashboard(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	link, err := h.paymentService.CreateDashboardLink(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err, "create dashboard link")
		return
	}
	c.JSON(http.StatusOK, link)
}

// stripeWebhook godoc
// @Summary Stripe event receiver
// @Description Verifies the event signature and applies completed checkouts as payments. Replayed events are acknowledged without change.
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /webhooks/stripe [post]
func (h *paymentHandler) stripeWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := c.GetRawData()
	if err != nil {
		logger.Warn("Failed to read webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read payload"})
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, err, "process webhook")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": "true"})
}
