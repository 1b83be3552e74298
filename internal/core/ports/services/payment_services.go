package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/dto"
)

// CheckoutSvc creates hosted checkout sessions for invoice payment.
type CheckoutSvc interface {
	// CreateCheckout builds a hosted checkout session for the invoice's
	// balance due. Under the pass_through pricing model the processing fee
	// is added as a separate line.
	CreateCheckout(ctx context.Context, companyID string, req dto.CreateCheckoutRequest, requestingUserID string) (*dto.CreateCheckoutResponse, error)
}

// WebhookSvc processes asynchronous payment events from the processor.
type WebhookSvc interface {
	// HandleWebhook verifies the event signature and applies completed
	// checkout sessions as card payments. Replayed events are acknowledged
	// without any state change.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// ConnectSvc manages the company's connected payment account.
type ConnectSvc interface {
	// CreateOnboardingLink gets or creates the company's connected
	// account and returns a hosted onboarding link for it.
	CreateOnboardingLink(ctx context.Context, companyID string, requestingUserID string) (*dto.ConnectLinkResponse, error)

	// CreateDashboardLink returns a login link to the processor's
	// dashboard for an already connected account.
	CreateDashboardLink(ctx context.Context, companyID string, requestingUserID string) (*dto.ConnectLinkResponse, error)
}

// PaymentSvcFacade combines payment collection interfaces
type PaymentSvcFacade interface {
	CheckoutSvc
	WebhookSvc
	ConnectSvc
}

// CheckoutSession is the provider's view of a created session.
type CheckoutSession struct {
	SessionID   string
	CheckoutURL string
}

// CheckoutParams describes the session to create.
type CheckoutParams struct {
	InvoiceID     string
	CompanyID     string
	InvoiceNumber string
	CustomerEmail string
	Description   string
	AmountCents   int64
	FeeCents      int64
	SuccessURL    string
	CancelURL     string
	StripeAccount string
}

// CompletedCheckout is the subset of a completed session the webhook
// handler needs.
type CompletedCheckout struct {
	InvoiceID       string
	CompanyID       string
	PaymentIntentID string
	AmountCents     int64
	FeeCents        int64
}

// CheckoutProvider abstracts the payment processor.
type CheckoutProvider interface {
	// CreateSession creates a hosted checkout session.
	CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)

	// VerifyEvent checks the webhook signature and, when the event is a
	// completed checkout, returns its details. Events of other types
	// return (nil, nil).
	VerifyEvent(payload []byte, signature string) (*CompletedCheckout, error)
}

// ConnectProvider abstracts connected-account onboarding at the
// payment processor.
type ConnectProvider interface {
	// CreateConnectAccount creates a new express connected account and
	// returns its ID.
	CreateConnectAccount(ctx context.Context, email string) (string, error)

	// CreateAccountLink returns a hosted onboarding URL for the account.
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)

	// CreateLoginLink returns a processor dashboard login URL for the
	// account.
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
}

// PassThroughFee computes the processing fee (in cents) that makes the
// company whole when the fee is passed through to the payer.
type PassThroughFee func(amountCents int64) int64
