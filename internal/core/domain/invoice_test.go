package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{"draft to sent", InvoiceDraft, InvoiceSent, true},
		{"draft to paid", InvoiceDraft, InvoicePaid, true},
		{"draft to partial", InvoiceDraft, InvoicePartial, true},
		{"draft to void", InvoiceDraft, InvoiceVoid, true},
		{"draft to overdue", InvoiceDraft, InvoiceOverdue, false},
		{"sent to viewed", InvoiceSent, InvoiceViewed, true},
		{"sent to overdue", InvoiceSent, InvoiceOverdue, true},
		{"sent back to draft", InvoiceSent, InvoiceDraft, false},
		{"viewed to paid", InvoiceViewed, InvoicePaid, true},
		{"partial to paid", InvoicePartial, InvoicePaid, true},
		{"partial to overdue", InvoicePartial, InvoiceOverdue, true},
		{"partial to void", InvoicePartial, InvoiceVoid, true},
		{"overdue to paid", InvoiceOverdue, InvoicePaid, true},
		{"overdue to partial", InvoiceOverdue, InvoicePartial, true},
		{"paid is terminal", InvoicePaid, InvoiceVoid, false},
		{"void is terminal", InvoiceVoid, InvoiceSent, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestInvoiceBalanceDue(t *testing.T) {
	inv := Invoice{Total: dec("220"), AmountPaid: dec("100")}
	assert.True(t, inv.BalanceDue().Equal(dec("120")))

	inv.AmountPaid = dec("220")
	assert.True(t, inv.BalanceDue().IsZero())

	// Overpayment never reports a negative balance.
	inv.AmountPaid = dec("250")
	assert.True(t, inv.BalanceDue().IsZero())
}

func TestStatusAfterPayment(t *testing.T) {
	assert.Equal(t, InvoicePaid, StatusAfterPayment(dec("220"), dec("220")))
	assert.Equal(t, InvoicePaid, StatusAfterPayment(dec("230"), dec("220")))
	assert.Equal(t, InvoicePartial, StatusAfterPayment(dec("100"), dec("220")))
	assert.Equal(t, InvoicePartial, StatusAfterPayment(decimal.Zero, dec("220")))
}
