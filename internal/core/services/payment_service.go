package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
)

type paymentService struct {
	cfg          *config.Config
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	companyRepo  portsrepo.CompanyRepositoryFacade
	customerRepo portsrepo.CustomerReader
	provider     portssvc.CheckoutProvider
	connect      portssvc.ConnectProvider
	feeFn        portssvc.PassThroughFee
	notifier     portssvc.NotificationSvc
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	cfg *config.Config,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	provider portssvc.CheckoutProvider,
	connect portssvc.ConnectProvider,
	feeFn portssvc.PassThroughFee,
	notifier portssvc.NotificationSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		cfg:          cfg,
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		provider:     provider,
		connect:      connect,
		feeFn:        feeFn,
		notifier:     notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// centsFactor converts dollar decimals into integer cents for the processor.
var centsFactor = decimal.NewFromInt(100)

func (s *paymentService) CreateCheckout(ctx context.Context, companyID string, req dto.CreateCheckoutRequest, requestingUserID string) (*dto.CreateCheckoutResponse, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status.IsTerminal() {
		return nil, fmt.Errorf("invoice in status %s cannot accept payments: %w", invoice.Status, apperrors.ErrConflict)
	}

	balance := invoice.BalanceDue()
	if !balance.IsPositive() {
		return nil, fmt.Errorf("invoice has no balance due: %w", apperrors.ErrConflict)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	customerEmail := ""
	if customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, invoice.CustomerID); err == nil {
		customerEmail = customer.Email
	}

	amountCents := balance.Mul(centsFactor).Round(0).IntPart()
	var feeCents int64
	if company.StripePricingModel == domain.PricingPassThrough {
		feeCents = s.feeFn(amountCents)
	}

	params := portssvc.CheckoutParams{
		InvoiceID:     invoice.InvoiceID,
		CompanyID:     companyID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerEmail: customerEmail,
		Description:   invoice.Title,
		AmountCents:   amountCents,
		FeeCents:      feeCents,
		SuccessURL:    s.cfg.AppBaseURL + "/portal/invoices/" + invoice.InvoiceID + "?payment=success",
		CancelURL:     s.cfg.AppBaseURL + "/portal/invoices/" + invoice.InvoiceID + "?payment=cancelled",
		StripeAccount: company.StripeAccountID,
	}

	sess, err := s.provider.CreateSession(ctx, params)
	if err != nil {
		return nil, err
	}
	return &dto.CreateCheckoutResponse{SessionID: sess.SessionID, CheckoutURL: sess.CheckoutURL}, nil
}

func (s *paymentService) CreateOnboardingLink(ctx context.Context, companyID string, requestingUserID string) (*dto.ConnectLinkResponse, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	accountID := company.StripeAccountID
	if accountID == "" {
		accountID, err = s.connect.CreateConnectAccount(ctx, company.Email)
		if err != nil {
			return nil, err
		}
		company.StripeAccountID = accountID
		company.LastUpdatedAt = time.Now().UTC()
		company.LastUpdatedBy = requestingUserID
		if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
			return nil, fmt.Errorf("failed to store connect account: %w", err)
		}
	}

	url, err := s.connect.CreateAccountLink(ctx, accountID,
		s.cfg.AppBaseURL+"/settings/payments?refresh=true",
		s.cfg.AppBaseURL+"/settings/payments?success=true",
	)
	if err != nil {
		return nil, err
	}
	return &dto.ConnectLinkResponse{URL: url}, nil
}

func (s *paymentService) CreateDashboardLink(ctx context.Context, companyID string, requestingUserID string) (*dto.ConnectLinkResponse, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.StripeAccountID == "" {
		return nil, fmt.Errorf("stripe account not connected: %w", apperrors.ErrValidation)
	}

	url, err := s.connect.CreateLoginLink(ctx, company.StripeAccountID)
	if err != nil {
		return nil, err
	}
	return &dto.ConnectLinkResponse{URL: url}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	completed, err := s.provider.VerifyEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if completed == nil {
		// Not a checkout completion; acknowledge and move on.
		return nil
	}

	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, completed.CompanyID, completed.InvoiceID)
	if err != nil {
		return fmt.Errorf("invoice %s from checkout session not found: %w", completed.InvoiceID, err)
	}

	now := time.Now().UTC()
	amount := decimal.NewFromInt(completed.AmountCents).Div(centsFactor)
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		CompanyID:       completed.CompanyID,
		InvoiceID:       completed.InvoiceID,
		Amount:          amount,
		Method:          domain.PaymentMethodCard,
		StripePaymentID: &completed.PaymentIntentID,
		Notes:           "Online card payment",
		PaidAt:          now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "stripe-webhook",
			LastUpdatedAt: now,
			LastUpdatedBy: "stripe-webhook",
		},
	}
	incomeTxn := paymentIncomeTransaction(&payment, invoice, "stripe-webhook", now)

	updated, err := s.invoiceRepo.ApplyPayment(ctx, payment, incomeTxn)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Replayed delivery of an event already applied.
			logger.Info("ignoring duplicate payment event",
				"invoiceID", completed.InvoiceID, "paymentIntentID", completed.PaymentIntentID)
			return nil
		}
		return fmt.Errorf("failed to apply payment: %w", err)
	}

	logger.Info("applied card payment",
		"invoiceID", updated.InvoiceID, "status", updated.Status, "amount", amount.String())

	if err := s.notifier.SendPaymentReceiptEmail(ctx, completed.CompanyID, updated, &payment); err != nil {
		// Receipt delivery is best effort; the payment is already recorded.
		logger.Warn("failed to send payment receipt", "invoiceID", updated.InvoiceID, "error", err)
	}
	return nil
}
