package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// PortalSvc drives the customer-facing portal: passwordless login and the
// customer's view of their own documents.
type PortalSvc interface {
	// RequestLogin emails a single-use magic link to the customer if the
	// address matches one. The outcome is indistinguishable either way.
	RequestLogin(ctx context.Context, req dto.PortalLoginRequest) error

	// VerifyToken redeems a magic-link token for a portal session token.
	// The link token is cleared on success, making it single use.
	VerifyToken(ctx context.Context, req dto.PortalVerifyRequest) (*dto.PortalSessionResponse, error)

	// ListDocuments retrieves the customer's own estimates and invoices.
	ListDocuments(ctx context.Context, companyID, customerID string) (*dto.PortalDocumentsResponse, error)

	// GetEstimate retrieves one of the customer's estimates, marking a
	// sent estimate viewed.
	GetEstimate(ctx context.Context, companyID, customerID, estimateID string) (*domain.Estimate, error)

	// GetInvoice retrieves one of the customer's invoices, marking a sent
	// invoice viewed.
	GetInvoice(ctx context.Context, companyID, customerID, invoiceID string) (*domain.Invoice, error)

	// RespondToEstimate records the customer's approval or rejection.
	RespondToEstimate(ctx context.Context, companyID, customerID, estimateID string, req dto.RespondToEstimateRequest) (*domain.Estimate, error)
}
