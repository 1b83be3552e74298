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

// invoiceDueDays is the default payment window applied when a converted
// estimate carries no validUntil date.
const invoiceDueDays = 30

type estimateService struct {
	estimateRepo portsrepo.EstimateRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerReader
	numbers      portsrepo.DocumentNumberAllocator
	notifier     portssvc.NotificationSvc
}

// NewEstimateService creates a new EstimateService.
func NewEstimateService(
	estimateRepo portsrepo.EstimateRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	numbers portsrepo.DocumentNumberAllocator,
	notifier portssvc.NotificationSvc,
) portssvc.EstimateSvcFacade {
	return &estimateService{
		estimateRepo: estimateRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		numbers:      numbers,
		notifier:     notifier,
	}
}

var _ portssvc.EstimateSvcFacade = (*estimateService)(nil)

func (s *estimateService) GetEstimateByID(ctx context.Context, companyID, estimateID string) (*domain.Estimate, error) {
	return s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
}

func (s *estimateService) ListEstimates(ctx context.Context, companyID string, params dto.ListEstimatesParams) (*dto.ListEstimatesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	estimates, nextToken, err := s.estimateRepo.ListEstimates(ctx, companyID, limit, params.NextToken, domain.EstimateStatus(params.Status), params.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	res := dto.ToListEstimatesResponse(estimates, nextToken)
	return &res, nil
}

func (s *estimateService) CreateEstimate(ctx context.Context, companyID string, req dto.CreateEstimateRequest, creatorUserID string) (*domain.Estimate, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID); err != nil {
		return nil, err
	}

	number, err := s.numbers.NextEstimateNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate estimate number: %w", err)
	}

	items, totals := domain.ComputeTotals(dto.ToLineItemsDomain(req.LineItems), req.TaxRate)
	for i := range items {
		items[i].LineItemID = uuid.NewString()
	}

	now := time.Now().UTC()
	estimate := domain.Estimate{
		EstimateID:     uuid.NewString(),
		CompanyID:      companyID,
		CustomerID:     req.CustomerID,
		EstimateNumber: number,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.EstimateDraft,
		ValidUntil:     req.ValidUntil,
		LineItems:      items,
		Subtotal:       totals.Subtotal,
		TaxRate:        req.TaxRate,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.estimateRepo.SaveEstimate(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to save estimate: %w", err)
	}
	return &estimate, nil
}

func (s *estimateService) UpdateEstimate(ctx context.Context, companyID, estimateID string, req dto.UpdateEstimateRequest, requestingUserID string) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
	if err != nil {
		return nil, err
	}

	financialChange := req.LineItems != nil || req.TaxRate != nil
	if financialChange && estimate.Status != domain.EstimateDraft {
		return nil, fmt.Errorf("line items and tax rate are only editable on draft estimates: %w", apperrors.ErrConflict)
	}

	if req.Title != nil {
		estimate.Title = *req.Title
	}
	if req.Description != nil {
		estimate.Description = *req.Description
	}
	if req.ValidUntil != nil {
		estimate.ValidUntil = req.ValidUntil
	}
	if req.Notes != nil {
		estimate.Notes = *req.Notes
	}
	if req.TaxRate != nil {
		estimate.TaxRate = *req.TaxRate
	}
	if req.LineItems != nil {
		items := dto.ToLineItemsDomain(*req.LineItems)
		for i := range items {
			items[i].LineItemID = uuid.NewString()
		}
		estimate.LineItems = items
	}
	if financialChange {
		items, totals := domain.ComputeTotals(estimate.LineItems, estimate.TaxRate)
		estimate.LineItems = items
		estimate.Subtotal = totals.Subtotal
		estimate.Tax = totals.Tax
		estimate.Total = totals.Total
	}

	now := time.Now().UTC()
	if req.Status != nil {
		target := domain.EstimateStatus(*req.Status)
		if target != estimate.Status {
			if !estimate.Status.CanTransitionTo(target) {
				return nil, fmt.Errorf("estimate cannot move from %s to %s: %w", estimate.Status, target, apperrors.ErrConflict)
			}
			switch target {
			case domain.EstimateApproved:
				estimate.ApprovedAt = &now
			case domain.EstimateRejected:
				estimate.RejectedAt = &now
			}
			estimate.Status = target
		}
	}
	estimate.LastUpdatedAt = now
	estimate.LastUpdatedBy = requestingUserID

	if err := s.estimateRepo.UpdateEstimate(ctx, *estimate); err != nil {
		return nil, fmt.Errorf("failed to update estimate: %w", err)
	}
	return estimate, nil
}

func (s *estimateService) DeleteEstimate(ctx context.Context, companyID, estimateID string, requestingUserID string) error {
	estimate, err := s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
	if err != nil {
		return err
	}
	if estimate.Status != domain.EstimateDraft {
		return fmt.Errorf("only draft estimates can be deleted: %w", apperrors.ErrConflict)
	}
	if err := s.estimateRepo.DeleteEstimate(ctx, companyID, estimateID); err != nil {
		return fmt.Errorf("failed to delete estimate: %w", err)
	}
	return nil
}

func (s *estimateService) SendEstimate(ctx context.Context, companyID, estimateID string, req dto.SendDocumentRequest, requestingUserID string) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if estimate.Status != domain.EstimateDraft && !estimate.Status.CanTransitionTo(domain.EstimateSent) {
		return nil, fmt.Errorf("estimate in status %s cannot be sent: %w", estimate.Status, apperrors.ErrConflict)
	}

	if err := s.notifier.SendEstimateEmail(ctx, companyID, estimate, req.Message); err != nil {
		return nil, fmt.Errorf("failed to send estimate email: %w", err)
	}

	now := time.Now().UTC()
	if estimate.Status == domain.EstimateDraft {
		if err := s.estimateRepo.UpdateEstimateStatus(ctx, companyID, estimateID, domain.EstimateSent, nil, nil, requestingUserID, now); err != nil {
			return nil, fmt.Errorf("failed to mark estimate sent: %w", err)
		}
		estimate.Status = domain.EstimateSent
		estimate.LastUpdatedAt = now
		estimate.LastUpdatedBy = requestingUserID
	}
	return estimate, nil
}

func (s *estimateService) ConvertToInvoice(ctx context.Context, companyID, estimateID string, requestingUserID string) (*domain.Invoice, error) {
	estimate, err := s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
	if err != nil {
		return nil, err
	}

	markApproved := false
	switch {
	case estimate.Status == domain.EstimateApproved:
	case estimate.Status.CanTransitionTo(domain.EstimateApproved):
		// Converting implicitly approves an open estimate.
		markApproved = true
	default:
		return nil, fmt.Errorf("estimate in status %s cannot be converted: %w", estimate.Status, apperrors.ErrConflict)
	}

	number, err := s.numbers.NextInvoiceNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	now := time.Now().UTC()
	dueDate := now.AddDate(0, 0, invoiceDueDays)
	if estimate.ValidUntil != nil && estimate.ValidUntil.After(now) {
		dueDate = *estimate.ValidUntil
	}

	items := make([]domain.LineItem, len(estimate.LineItems))
	for i, item := range estimate.LineItems {
		item.LineItemID = uuid.NewString()
		items[i] = item
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     companyID,
		CustomerID:    estimate.CustomerID,
		EstimateID:    &estimate.EstimateID,
		InvoiceNumber: number,
		Title:         estimate.Title,
		Description:   estimate.Description,
		Status:        domain.InvoiceDraft,
		DueDate:       &dueDate,
		LineItems:     items,
		Subtotal:      estimate.Subtotal,
		TaxRate:       estimate.TaxRate,
		Tax:           estimate.Tax,
		Total:         estimate.Total,
		Notes:         estimate.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.invoiceRepo.ConvertEstimate(ctx, invoice, markApproved, now); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *estimateService) ExpireEstimates(ctx context.Context, companyID string) (int64, error) {
	now := time.Now().UTC()
	expired, err := s.estimateRepo.MarkExpiredEstimates(ctx, companyID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire estimates: %w", err)
	}
	if expired > 0 {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Info("expired estimates past their valid-until date", "companyID", companyID, "count", expired)
	}
	return expired, nil
}
