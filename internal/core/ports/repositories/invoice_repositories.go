package repositories

import (
	"context"
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice and its line items
	// within a company.
	FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices for a company
	// using token-based pagination, optionally filtered by status or
	// customer. Line items are loaded for each returned invoice.
	ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string, status domain.InvoiceStatus, customerID string) ([]domain.Invoice, *string, error)

	// ListInvoicesByCustomer retrieves all non-draft invoices belonging to
	// a customer, newest first. Used by the customer portal.
	ListInvoicesByCustomer(ctx context.Context, companyID, customerID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists an invoice and its line items in a single
	// database transaction.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice updates an invoice and replaces its line items in a
	// single database transaction.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus updates only the status and paid date.
	UpdateInvoiceStatus(ctx context.Context, companyID, invoiceID string, status domain.InvoiceStatus, paidDate *time.Time, updatedBy string, updatedAt time.Time) error

	// DeleteInvoice removes an invoice and its line items.
	DeleteInvoice(ctx context.Context, companyID, invoiceID string) error

	// MarkOverdueInvoices moves every open invoice whose dueDate has passed
	// to overdue, returning the number affected.
	MarkOverdueInvoices(ctx context.Context, companyID string, now time.Time) (int64, error)
}

// EstimateConverter creates an invoice from an approved estimate. The
// estimate status change and the invoice insert happen in one database
// transaction; the unique link on the invoice's estimate reference makes
// a second conversion fail with a conflict.
type EstimateConverter interface {
	// ConvertEstimate inserts the invoice, marks the estimate approved if
	// it is not already, and returns apperrors.ErrConflict if the estimate
	// was already converted.
	ConvertEstimate(ctx context.Context, invoice domain.Invoice, markApproved bool, approvedAt time.Time) error
}

// PaymentApplier records a payment and rolls it up onto the invoice
// atomically.
type PaymentApplier interface {
	// ApplyPayment inserts the payment, increments the invoice's amount
	// paid, moves it to paid or partial, and records the income
	// transaction, all in one database transaction. A payment whose
	// stripePaymentID already exists returns apperrors.ErrDuplicate with
	// no state change.
	ApplyPayment(ctx context.Context, payment domain.Payment, incomeTxn *domain.Transaction) (*domain.Invoice, error)

	// ListPaymentsByInvoice retrieves all payments recorded against an
	// invoice, newest first.
	ListPaymentsByInvoice(ctx context.Context, companyID, invoiceID string) ([]domain.Payment, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	EstimateConverter
	PaymentApplier
}
