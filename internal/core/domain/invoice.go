package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the state of an invoice's billing lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoiceViewed  InvoiceStatus = "viewed"
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePartial InvoiceStatus = "partial"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

// invoiceTransitions is the single source of truth for legal invoice
// status changes. Payment application and overdue sweeps both consult
// it, so a paid or voided invoice never moves again.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:   {InvoiceSent, InvoicePaid, InvoicePartial, InvoiceVoid},
	InvoiceSent:    {InvoiceViewed, InvoicePaid, InvoicePartial, InvoiceOverdue, InvoiceVoid},
	InvoiceViewed:  {InvoicePaid, InvoicePartial, InvoiceOverdue, InvoiceVoid},
	InvoicePartial: {InvoicePaid, InvoiceOverdue, InvoiceVoid},
	InvoiceOverdue: {InvoicePaid, InvoicePartial, InvoiceVoid},
	InvoicePaid:    {},
	InvoiceVoid:    {},
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle transition.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the invoice can still change state.
func (s InvoiceStatus) IsTerminal() bool {
	return len(invoiceTransitions[s]) == 0
}

// ValidInvoiceStatus reports whether s is one of the known invoice states.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// Invoice is a bill issued to a customer, optionally created from an
// approved estimate or a completed job.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`
	CustomerID    string          `json:"customerID"`
	EstimateID    *string         `json:"estimateID"`
	JobID         *string         `json:"jobID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        InvoiceStatus   `json:"status"`
	DueDate       *time.Time      `json:"dueDate"`
	PaidDate      *time.Time      `json:"paidDate"`
	LineItems     []LineItem      `json:"lineItems"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Notes         string          `json:"notes"`
	AuditFields
}

// BalanceDue is the remaining amount owed on the invoice, never negative.
func (i Invoice) BalanceDue() decimal.Decimal {
	balance := i.Total.Sub(i.AmountPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// StatusAfterPayment picks the status an invoice should land in once
// amountPaid covers (or partially covers) the total.
func StatusAfterPayment(amountPaid, total decimal.Decimal) InvoiceStatus {
	if amountPaid.GreaterThanOrEqual(total) {
		return InvoicePaid
	}
	return InvoicePartial
}
