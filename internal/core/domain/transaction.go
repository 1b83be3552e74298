package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionIncome || t == TransactionExpense
}

// CategoryServiceRevenue is the income category used for payments
// recorded automatically when an invoice is paid.
const CategoryServiceRevenue = "Service Revenue"

// Transaction is a single bookkeeping entry. Entries tied to invoice
// payments carry the invoice's ID so reports can separate earned
// revenue from manually recorded income.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	InvoiceID     *string         `json:"invoiceID"`
	AuditFields
}
