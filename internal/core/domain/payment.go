package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment was collected.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodCheck, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Payment records money received against an invoice. StripePaymentID is
// set for card payments collected through checkout and is unique per
// company, which makes webhook processing idempotent.
type Payment struct {
	PaymentID       string          `json:"paymentID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	InvoiceID       string          `json:"invoiceID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	StripePaymentID *string         `json:"stripePaymentID"`
	Notes           string          `json:"notes"`
	PaidAt          time.Time       `json:"paidAt"`
	AuditFields
}
