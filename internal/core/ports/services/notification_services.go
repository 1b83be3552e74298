package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// EmailMessage is a single outbound email.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string

	// Attachment, when set, is delivered as a file alongside the body.
	AttachmentName string
	Attachment     []byte
}

// EmailSender delivers a message to the customer. Implementations include
// the company's linked Gmail account, plain SMTP and a logging fallback.
type EmailSender interface {
	// Send delivers the message on behalf of the company.
	Send(ctx context.Context, company *domain.Company, msg EmailMessage) error
}

// PDFRenderer renders printable documents.
type PDFRenderer interface {
	// RenderEstimate produces the estimate PDF.
	RenderEstimate(company *domain.Company, customer *domain.Customer, estimate *domain.Estimate) ([]byte, error)

	// RenderInvoice produces the invoice PDF.
	RenderInvoice(company *domain.Company, customer *domain.Customer, invoice *domain.Invoice) ([]byte, error)
}

// NotificationSvc composes and sends customer-facing document emails.
type NotificationSvc interface {
	// SendEstimateEmail emails the estimate with its PDF and portal link.
	SendEstimateEmail(ctx context.Context, companyID string, estimate *domain.Estimate, personalMessage string) error

	// SendInvoiceEmail emails the invoice with its PDF and portal link.
	SendInvoiceEmail(ctx context.Context, companyID string, invoice *domain.Invoice, personalMessage string) error

	// SendPortalLoginEmail emails the magic login link to the customer.
	SendPortalLoginEmail(ctx context.Context, company *domain.Company, customer *domain.Customer, loginURL string) error

	// SendPaymentReceiptEmail emails a receipt once an invoice is paid.
	SendPaymentReceiptEmail(ctx context.Context, companyID string, invoice *domain.Invoice, payment *domain.Payment) error
}
