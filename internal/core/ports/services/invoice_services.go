package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice with line items.
	GetInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListPayments retrieves the payments recorded against an invoice.
	ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.Payment, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new draft invoice with a company-scoped
	// invoice number and server-computed totals.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice updates an invoice. Financial fields are only editable
	// while the invoice is in draft.
	UpdateInvoice(ctx context.Context, companyID, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes a draft invoice.
	DeleteInvoice(ctx context.Context, companyID, invoiceID string, requestingUserID string) error
}

// InvoiceLifecycleSvc defines the invoice's send, payment and sweep actions
type InvoiceLifecycleSvc interface {
	// SendInvoice emails the invoice to the customer and moves it to sent.
	SendInvoice(ctx context.Context, companyID, invoiceID string, req dto.SendDocumentRequest, requestingUserID string) (*domain.Invoice, error)

	// RecordPayment records a manual payment (cash, check, transfer)
	// against the invoice and rolls it up to paid or partial.
	RecordPayment(ctx context.Context, companyID, invoiceID string, req dto.RecordPaymentRequest, requestingUserID string) (*domain.Invoice, error)

	// VoidInvoice moves an unpaid invoice to void.
	VoidInvoice(ctx context.Context, companyID, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	// SweepOverdue moves the company's open invoices past their due date
	// to overdue.
	SweepOverdue(ctx context.Context, companyID string) (int64, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceLifecycleSvc
}
