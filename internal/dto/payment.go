package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// RecordPaymentRequest defines a manually recorded payment against an
// invoice (cash, check, bank transfer).
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=card cash check transfer other"`
	Notes  string          `json:"notes"`
	PaidAt *time.Time      `json:"paidAt"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string               `json:"paymentID"`
	InvoiceID       string               `json:"invoiceID"`
	Amount          decimal.Decimal      `json:"amount"`
	Method          domain.PaymentMethod `json:"method"`
	StripePaymentID *string              `json:"stripePaymentID"`
	Notes           string               `json:"notes"`
	PaidAt          time.Time            `json:"paidAt"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          p.Method,
		StripePaymentID: p.StripePaymentID,
		Notes:           p.Notes,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
	}
}

// ToListPaymentsResponse converts a slice of domain.Payment.
func ToListPaymentsResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentResponse(&p)
	}
	return res
}

// CreateCheckoutRequest asks for a hosted checkout session for an invoice.
type CreateCheckoutRequest struct {
	InvoiceID string `json:"invoiceID" binding:"required"`
}

// CreateCheckoutResponse carries the hosted checkout URL the payer is
// redirected to.
type CreateCheckoutResponse struct {
	SessionID   string `json:"sessionID"`
	CheckoutURL string `json:"checkoutURL"`
}

// ConnectLinkResponse carries a hosted Stripe URL: either the Connect
// onboarding flow or the express dashboard login.
type ConnectLinkResponse struct {
	URL string `json:"url"`
}
