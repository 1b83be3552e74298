package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
)

type recurringInvoiceService struct {
	recurringRepo portsrepo.RecurringInvoiceRepositoryFacade
	invoiceRepo   portsrepo.InvoiceWriter
	customerRepo  portsrepo.CustomerReader
	numbers       portsrepo.DocumentNumberAllocator
}

// NewRecurringInvoiceService creates a new RecurringInvoiceService.
func NewRecurringInvoiceService(
	recurringRepo portsrepo.RecurringInvoiceRepositoryFacade,
	invoiceRepo portsrepo.InvoiceWriter,
	customerRepo portsrepo.CustomerReader,
	numbers portsrepo.DocumentNumberAllocator,
) portssvc.RecurringInvoiceSvcFacade {
	return &recurringInvoiceService{
		recurringRepo: recurringRepo,
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		numbers:       numbers,
	}
}

var _ portssvc.RecurringInvoiceSvcFacade = (*recurringInvoiceService)(nil)

func (s *recurringInvoiceService) GetRecurringInvoiceByID(ctx context.Context, companyID, recurringInvoiceID string) (*domain.RecurringInvoice, error) {
	return s.recurringRepo.FindRecurringInvoiceByID(ctx, companyID, recurringInvoiceID)
}

func (s *recurringInvoiceService) ListRecurringInvoices(ctx context.Context, companyID string) ([]domain.RecurringInvoice, error) {
	return s.recurringRepo.ListRecurringInvoices(ctx, companyID)
}

func (s *recurringInvoiceService) CreateRecurringInvoice(ctx context.Context, companyID string, req dto.CreateRecurringInvoiceRequest, creatorUserID string) (*domain.RecurringInvoice, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	schedule := domain.RecurringInvoice{
		RecurringInvoiceID: uuid.NewString(),
		CompanyID:          companyID,
		CustomerID:         req.CustomerID,
		Frequency:          domain.RecurringFrequency(req.Frequency),
		NextRunDate:        req.NextRunDate.UTC(),
		EndDate:            req.EndDate,
		IsActive:           true,
		Template:           dto.ToInvoiceTemplateDomain(req.Template),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.recurringRepo.SaveRecurringInvoice(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save recurring invoice: %w", err)
	}
	return &schedule, nil
}

func (s *recurringInvoiceService) UpdateRecurringInvoice(ctx context.Context, companyID, recurringInvoiceID string, req dto.UpdateRecurringInvoiceRequest, requestingUserID string) (*domain.RecurringInvoice, error) {
	schedule, err := s.recurringRepo.FindRecurringInvoiceByID(ctx, companyID, recurringInvoiceID)
	if err != nil {
		return nil, err
	}

	if req.Frequency != nil {
		schedule.Frequency = domain.RecurringFrequency(*req.Frequency)
	}
	if req.NextRunDate != nil {
		next := req.NextRunDate.UTC()
		schedule.NextRunDate = next
	}
	if req.EndDate != nil {
		schedule.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}
	if req.Template != nil {
		schedule.Template = dto.ToInvoiceTemplateDomain(*req.Template)
	}
	schedule.LastUpdatedAt = time.Now().UTC()
	schedule.LastUpdatedBy = requestingUserID

	if err := s.recurringRepo.UpdateRecurringInvoice(ctx, *schedule); err != nil {
		return nil, fmt.Errorf("failed to update recurring invoice: %w", err)
	}
	return schedule, nil
}

func (s *recurringInvoiceService) DeleteRecurringInvoice(ctx context.Context, companyID, recurringInvoiceID string, requestingUserID string) error {
	if err := s.recurringRepo.DeleteRecurringInvoice(ctx, companyID, recurringInvoiceID); err != nil {
		return fmt.Errorf("failed to delete recurring invoice: %w", err)
	}
	return nil
}

func (s *recurringInvoiceService) RunDueSchedules(ctx context.Context, companyID string, requestingUserID string) ([]domain.Invoice, error) {
	now := time.Now().UTC()
	due, err := s.recurringRepo.ListDueRecurringInvoices(ctx, companyID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due schedules: %w", err)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	generated := make([]domain.Invoice, 0, len(due))
	for _, schedule := range due {
		invoice, err := s.generateFromSchedule(ctx, &schedule, now, requestingUserID)
		if err != nil {
			// One broken schedule must not block the rest of the sweep.
			logger.Error("failed to generate invoice from schedule",
				"recurringInvoiceID", schedule.RecurringInvoiceID, "error", err)
			continue
		}
		generated = append(generated, *invoice)
	}
	if len(generated) > 0 {
		logger.Info("generated invoices from recurring schedules", "companyID", companyID, "count", len(generated))
	}
	return generated, nil
}

func (s *recurringInvoiceService) generateFromSchedule(ctx context.Context, schedule *domain.RecurringInvoice, now time.Time, requestingUserID string) (*domain.Invoice, error) {
	number, err := s.numbers.NextInvoiceNumber(ctx, schedule.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	items, totals := domain.ComputeTotals(schedule.Template.LineItems, schedule.Template.TaxRate)
	for i := range items {
		items[i].LineItemID = uuid.NewString()
	}

	dueInDays := schedule.Template.DueInDays
	if dueInDays <= 0 {
		dueInDays = invoiceDueDays
	}
	dueDate := now.AddDate(0, 0, dueInDays)

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     schedule.CompanyID,
		CustomerID:    schedule.CustomerID,
		InvoiceNumber: number,
		Title:         schedule.Template.Title,
		Description:   schedule.Template.Description,
		Status:        domain.InvoiceDraft,
		DueDate:       &dueDate,
		LineItems:     items,
		Subtotal:      totals.Subtotal,
		TaxRate:       schedule.Template.TaxRate,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Notes:         schedule.Template.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save generated invoice: %w", err)
	}

	nextRun := schedule.Frequency.NextAfter(schedule.NextRunDate)
	if err := s.recurringRepo.AdvanceSchedule(ctx, schedule.CompanyID, schedule.RecurringInvoiceID, nextRun, now); err != nil {
		return nil, fmt.Errorf("failed to advance schedule: %w", err)
	}
	return &invoice, nil
}
