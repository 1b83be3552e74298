package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
)

type invoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerReader
	numbers      portsrepo.DocumentNumberAllocator
	notifier     portssvc.NotificationSvc
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	numbers portsrepo.DocumentNumberAllocator,
	notifier portssvc.NotificationSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		numbers:      numbers,
		notifier:     notifier,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, companyID, limit, params.NextToken, domain.InvoiceStatus(params.Status), params.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	res := dto.ToListInvoicesResponse(invoices, nextToken)
	return &res, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, companyID, invoiceID string) ([]domain.Payment, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListPaymentsByInvoice(ctx, companyID, invoiceID)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID); err != nil {
		return nil, err
	}

	number, err := s.numbers.NextInvoiceNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	items, totals := domain.ComputeTotals(dto.ToLineItemsDomain(req.LineItems), req.TaxRate)
	for i := range items {
		items[i].LineItemID = uuid.NewString()
	}

	now := time.Now().UTC()
	dueDate := req.DueDate
	if dueDate == nil {
		d := now.AddDate(0, 0, invoiceDueDays)
		dueDate = &d
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     companyID,
		CustomerID:    req.CustomerID,
		JobID:         req.JobID,
		InvoiceNumber: number,
		Title:         req.Title,
		Description:   req.Description,
		Status:        domain.InvoiceDraft,
		DueDate:       dueDate,
		LineItems:     items,
		Subtotal:      totals.Subtotal,
		TaxRate:       req.TaxRate,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	return &invoice, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, companyID, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	financialChange := req.LineItems != nil || req.TaxRate != nil
	if financialChange && invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("line items and tax rate are only editable on draft invoices: %w", apperrors.ErrConflict)
	}

	if req.Title != nil {
		invoice.Title = *req.Title
	}
	if req.Description != nil {
		invoice.Description = *req.Description
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.TaxRate != nil {
		invoice.TaxRate = *req.TaxRate
	}
	if req.LineItems != nil {
		items := dto.ToLineItemsDomain(*req.LineItems)
		for i := range items {
			items[i].LineItemID = uuid.NewString()
		}
		invoice.LineItems = items
	}
	if financialChange {
		items, totals := domain.ComputeTotals(invoice.LineItems, invoice.TaxRate)
		invoice.LineItems = items
		invoice.Subtotal = totals.Subtotal
		invoice.Tax = totals.Tax
		invoice.Total = totals.Total
	}

	now := time.Now().UTC()
	if req.Status != nil {
		target := domain.InvoiceStatus(*req.Status)
		if target != invoice.Status {
			if !invoice.Status.CanTransitionTo(target) {
				return nil, fmt.Errorf("invoice cannot move from %s to %s: %w", invoice.Status, target, apperrors.ErrConflict)
			}
			if target == domain.InvoicePaid {
				invoice.PaidDate = &now
			}
			invoice.Status = target
		}
	}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = requestingUserID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, companyID, invoiceID string, requestingUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceDraft {
		return fmt.Errorf("only draft invoices can be deleted: %w", apperrors.ErrConflict)
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, companyID, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, companyID, invoiceID string, req dto.SendDocumentRequest, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft && !invoice.Status.CanTransitionTo(domain.InvoiceSent) {
		return nil, fmt.Errorf("invoice in status %s cannot be sent: %w", invoice.Status, apperrors.ErrConflict)
	}

	if err := s.notifier.SendInvoiceEmail(ctx, companyID, invoice, req.Message); err != nil {
		return nil, fmt.Errorf("failed to send invoice email: %w", err)
	}

	now := time.Now().UTC()
	if invoice.Status == domain.InvoiceDraft {
		if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, companyID, invoiceID, domain.InvoiceSent, nil, requestingUserID, now); err != nil {
			return nil, fmt.Errorf("failed to mark invoice sent: %w", err)
		}
		invoice.Status = domain.InvoiceSent
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = requestingUserID
	}
	return invoice, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, companyID, invoiceID string, req dto.RecordPaymentRequest, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status.IsTerminal() {
		return nil, fmt.Errorf("invoice in status %s cannot accept payments: %w", invoice.Status, apperrors.ErrConflict)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		CompanyID: companyID,
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    domain.PaymentMethod(req.Method),
		Notes:     req.Notes,
		PaidAt:    paidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	incomeTxn := paymentIncomeTransaction(&payment, invoice, requestingUserID, now)

	updated, err := s.invoiceRepo.ApplyPayment(ctx, payment, incomeTxn)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *invoiceService) VoidInvoice(ctx context.Context, companyID, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(domain.InvoiceVoid) {
		return nil, fmt.Errorf("invoice in status %s cannot be voided: %w", invoice.Status, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, companyID, invoiceID, domain.InvoiceVoid, nil, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to void invoice: %w", err)
	}
	invoice.Status = domain.InvoiceVoid
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = requestingUserID
	return invoice, nil
}

func (s *invoiceService) SweepOverdue(ctx context.Context, companyID string) (int64, error) {
	now := time.Now().UTC()
	swept, err := s.invoiceRepo.MarkOverdueInvoices(ctx, companyID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue invoices: %w", err)
	}
	if swept > 0 {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Info("marked invoices overdue", "companyID", companyID, "count", swept)
	}
	return swept, nil
}

// paymentIncomeTransaction builds the bookkeeping entry recorded alongside
// an invoice payment.
func paymentIncomeTransaction(payment *domain.Payment, invoice *domain.Invoice, userID string, now time.Time) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     payment.CompanyID,
		Type:          domain.TransactionIncome,
		Category:      domain.CategoryServiceRevenue,
		Description:   fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
		Amount:        payment.Amount,
		Date:          payment.PaidAt,
		InvoiceID:     &payment.InvoiceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
