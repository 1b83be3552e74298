package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
)

type notificationService struct {
	cfg          *config.Config
	companyRepo  portsrepo.CompanyReader
	customerRepo portsrepo.CustomerReader
	sender       portssvc.EmailSender
	renderer     portssvc.PDFRenderer
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	cfg *config.Config,
	companyRepo portsrepo.CompanyReader,
	customerRepo portsrepo.CustomerReader,
	sender portssvc.EmailSender,
	renderer portssvc.PDFRenderer,
) portssvc.NotificationSvc {
	return &notificationService{
		cfg:          cfg,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		sender:       sender,
		renderer:     renderer,
	}
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

func (s *notificationService) SendEstimateEmail(ctx context.Context, companyID string, estimate *domain.Estimate, personalMessage string) error {
	company, customer, err := s.loadParties(ctx, companyID, estimate.CustomerID)
	if err != nil {
		return err
	}
	if customer.Email == "" {
		return fmt.Errorf("customer %s has no email address", customer.CustomerID)
	}

	pdf, err := s.renderer.RenderEstimate(company, customer, estimate)
	if err != nil {
		return fmt.Errorf("failed to render estimate pdf: %w", err)
	}

	portalLink := s.cfg.AppBaseURL + "/portal/estimates/" + estimate.EstimateID
	subject := fmt.Sprintf("Estimate %s from %s", estimate.EstimateNumber, company.Name)
	body := documentEmailHTML(company.Name, customer.FirstName, personalMessage,
		fmt.Sprintf("Estimate %s (%s) for %s is ready for your review.", estimate.EstimateNumber, estimate.Title, formatMoney(estimate.Total)),
		portalLink, "Review estimate")

	return s.sender.Send(ctx, company, portssvc.EmailMessage{
		To:             customer.Email,
		Subject:        subject,
		HTMLBody:       body,
		TextBody:       fmt.Sprintf("Estimate %s from %s: %s", estimate.EstimateNumber, company.Name, portalLink),
		AttachmentName: fmt.Sprintf("estimate-%s.pdf", estimate.EstimateNumber),
		Attachment:     pdf,
	})
}

func (s *notificationService) SendInvoiceEmail(ctx context.Context, companyID string, invoice *domain.Invoice, personalMessage string) error {
	company, customer, err := s.loadParties(ctx, companyID, invoice.CustomerID)
	if err != nil {
		return err
	}
	if customer.Email == "" {
		return fmt.Errorf("customer %s has no email address", customer.CustomerID)
	}

	pdf, err := s.renderer.RenderInvoice(company, customer, invoice)
	if err != nil {
		return fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	portalLink := s.cfg.AppBaseURL + "/portal/invoices/" + invoice.InvoiceID
	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, company.Name)
	summary := fmt.Sprintf("Invoice %s (%s) for %s is due", invoice.InvoiceNumber, invoice.Title, formatMoney(invoice.BalanceDue()))
	if invoice.DueDate != nil {
		summary += " by " + invoice.DueDate.Format("January 2, 2006")
	}
	summary += "."
	body := documentEmailHTML(company.Name, customer.FirstName, personalMessage, summary, portalLink, "View and pay invoice")

	return s.sender.Send(ctx, company, portssvc.EmailMessage{
		To:             customer.Email,
		Subject:        subject,
		HTMLBody:       body,
		TextBody:       fmt.Sprintf("Invoice %s from %s: %s", invoice.InvoiceNumber, company.Name, portalLink),
		AttachmentName: fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber),
		Attachment:     pdf,
	})
}

func (s *notificationService) SendPortalLoginEmail(ctx context.Context, company *domain.Company, customer *domain.Customer, loginURL string) error {
	if customer.Email == "" {
		return fmt.Errorf("customer %s has no email address", customer.CustomerID)
	}

	subject := fmt.Sprintf("Your sign-in link for %s", company.Name)
	body := documentEmailHTML(company.Name, customer.FirstName, "",
		"Use the button below to sign in to your customer portal. The link works once and expires shortly.",
		loginURL, "Sign in")

	return s.sender.Send(ctx, company, portssvc.EmailMessage{
		To:       customer.Email,
		Subject:  subject,
		HTMLBody: body,
		TextBody: "Sign in to your customer portal: " + loginURL,
	})
}

func (s *notificationService) SendPaymentReceiptEmail(ctx context.Context, companyID string, invoice *domain.Invoice, payment *domain.Payment) error {
	company, customer, err := s.loadParties(ctx, companyID, invoice.CustomerID)
	if err != nil {
		return err
	}
	if customer.Email == "" {
		return fmt.Errorf("customer %s has no email address", customer.CustomerID)
	}

	subject := fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNumber)
	summary := fmt.Sprintf("We received your payment of %s toward invoice %s.", formatMoney(payment.Amount), invoice.InvoiceNumber)
	if invoice.Status == domain.InvoicePaid {
		summary += " The invoice is now paid in full. Thank you!"
	} else {
		summary += fmt.Sprintf(" The remaining balance is %s.", formatMoney(invoice.BalanceDue()))
	}
	portalLink := s.cfg.AppBaseURL + "/portal/invoices/" + invoice.InvoiceID
	body := documentEmailHTML(company.Name, customer.FirstName, "", summary, portalLink, "View invoice")

	return s.sender.Send(ctx, company, portssvc.EmailMessage{
		To:       customer.Email,
		Subject:  subject,
		HTMLBody: body,
		TextBody: summary + " " + portalLink,
	})
}

func (s *notificationService) loadParties(ctx context.Context, companyID, customerID string) (*domain.Company, *domain.Customer, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load company: %w", err)
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return company, customer, nil
}

func formatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// documentEmailHTML is the shared layout for customer-facing emails: a
// greeting, an optional personal note from the company, the document
// summary and a call-to-action button.
func documentEmailHTML(companyName, customerFirstName, personalMessage, summary, link, linkLabel string) string {
	greeting := "Hi"
	if customerFirstName != "" {
		greeting = "Hi " + customerFirstName
	}

	note := ""
	if personalMessage != "" {
		note = fmt.Sprintf(`<p style="font-style:italic;color:#555;">%s</p>`, personalMessage)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#222;max-width:600px;margin:0 auto;padding:24px;">
  <h2 style="color:#1a1a2e;">%s</h2>
  <p>%s,</p>
  %s
  <p>%s</p>
  <p style="margin:32px 0;">
    <a href="%s" style="background:#2563eb;color:#ffffff;padding:12px 24px;border-radius:6px;text-decoration:none;">%s</a>
  </p>
  <p style="color:#888;font-size:12px;">If the button does not work, copy this link into your browser:<br>%s</p>
</body>
</html>`, companyName, greeting, note, summary, link, linkLabel, link)
}
