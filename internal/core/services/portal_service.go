package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
	"github.com/tradehive/tradehive_backend/internal/utils"
)

// portalTokenBytes is the entropy of a magic-link token before hex encoding.
const portalTokenBytes = 32

type portalService struct {
	cfg          *config.Config
	customerRepo portsrepo.CustomerRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	estimateRepo portsrepo.EstimateRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	notifier     portssvc.NotificationSvc
}

// NewPortalService creates a new PortalService.
func NewPortalService(
	cfg *config.Config,
	customerRepo portsrepo.CustomerRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	estimateRepo portsrepo.EstimateRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	notifier portssvc.NotificationSvc,
) portssvc.PortalSvc {
	return &portalService{
		cfg:          cfg,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		estimateRepo: estimateRepo,
		invoiceRepo:  invoiceRepo,
		notifier:     notifier,
	}
}

var _ portssvc.PortalSvc = (*portalService)(nil)

func (s *portalService) RequestLogin(ctx context.Context, req dto.PortalLoginRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown address; acknowledge identically to a match.
			return nil
		}
		return fmt.Errorf("failed to look up customer: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(portalTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate login token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.cfg.PortalTokenTTL)
	if err := s.customerRepo.SetPortalToken(ctx, customer.CompanyID, customer.CustomerID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store login token: %w", err)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, customer.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to load company for login email: %w", err)
	}

	loginURL := s.cfg.AppBaseURL + "/portal/verify?token=" + token
	if err := s.notifier.SendPortalLoginEmail(ctx, company, customer, loginURL); err != nil {
		return fmt.Errorf("failed to send login email: %w", err)
	}

	logger.Info("portal login link issued", "companyID", customer.CompanyID, "customerID", customer.CustomerID)
	return nil
}

func (s *portalService) VerifyToken(ctx context.Context, req dto.PortalVerifyRequest) (*dto.PortalSessionResponse, error) {
	now := time.Now().UTC()
	customer, err := s.customerRepo.FindCustomerByPortalToken(ctx, req.Token, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid or expired login link: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	// The link is single use: clear it before issuing the session.
	if err := s.customerRepo.ClearPortalToken(ctx, customer.CompanyID, customer.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to consume login token: %w", err)
	}

	sessionToken, err := utils.GeneratePortalJWT(customer.CustomerID, customer.CompanyID, s.cfg.JWTSecret, s.cfg.PortalSessionDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to issue portal session: %w", err)
	}

	return &dto.PortalSessionResponse{
		Token:    sessionToken,
		Customer: dto.ToCustomerResponse(customer),
	}, nil
}

func (s *portalService) ListDocuments(ctx context.Context, companyID, customerID string) (*dto.PortalDocumentsResponse, error) {
	estimates, err := s.estimateRepo.ListEstimatesByCustomer(ctx, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portal estimates: %w", err)
	}
	invoices, err := s.invoiceRepo.ListInvoicesByCustomer(ctx, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portal invoices: %w", err)
	}

	res := &dto.PortalDocumentsResponse{
		Estimates: make([]dto.EstimateResponse, len(estimates)),
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
	}
	for i := range estimates {
		res.Estimates[i] = dto.ToEstimateResponse(&estimates[i])
	}
	for i := range invoices {
		res.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return res, nil
}

func (s *portalService) GetEstimate(ctx context.Context, companyID, customerID, estimateID string) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if estimate.CustomerID != customerID || estimate.Status == domain.EstimateDraft {
		return nil, apperrors.ErrNotFound
	}

	if estimate.Status.CanTransitionTo(domain.EstimateViewed) {
		now := time.Now().UTC()
		if err := s.estimateRepo.UpdateEstimateStatus(ctx, companyID, estimateID, domain.EstimateViewed, nil, nil, customerID, now); err != nil {
			return nil, fmt.Errorf("failed to mark estimate viewed: %w", err)
		}
		estimate.Status = domain.EstimateViewed
		estimate.LastUpdatedAt = now
	}
	return estimate, nil
}

func (s *portalService) GetInvoice(ctx context.Context, companyID, customerID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CustomerID != customerID || invoice.Status == domain.InvoiceDraft {
		return nil, apperrors.ErrNotFound
	}

	if invoice.Status == domain.InvoiceSent && invoice.Status.CanTransitionTo(domain.InvoiceViewed) {
		now := time.Now().UTC()
		if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, companyID, invoiceID, domain.InvoiceViewed, nil, customerID, now); err != nil {
			return nil, fmt.Errorf("failed to mark invoice viewed: %w", err)
		}
		invoice.Status = domain.InvoiceViewed
		invoice.LastUpdatedAt = now
	}
	return invoice, nil
}

func (s *portalService) RespondToEstimate(ctx context.Context, companyID, customerID, estimateID string, req dto.RespondToEstimateRequest) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.FindEstimateByID(ctx, companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if estimate.CustomerID != customerID || estimate.Status == domain.EstimateDraft {
		return nil, apperrors.ErrNotFound
	}

	target := domain.EstimateStatus(req.Response)
	if !estimate.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("estimate in status %s cannot be %s: %w", estimate.Status, target, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	var approvedAt, rejectedAt *time.Time
	switch target {
	case domain.EstimateApproved:
		approvedAt = &now
	case domain.EstimateRejected:
		rejectedAt = &now
	}

	if err := s.estimateRepo.UpdateEstimateStatus(ctx, companyID, estimateID, target, approvedAt, rejectedAt, customerID, now); err != nil {
		return nil, fmt.Errorf("failed to record estimate response: %w", err)
	}
	estimate.Status = target
	estimate.ApprovedAt = approvedAt
	estimate.RejectedAt = rejectedAt
	estimate.LastUpdatedAt = now
	return estimate, nil
}
