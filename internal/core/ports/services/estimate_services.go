package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// EstimateReaderSvc defines read operations for estimate data
type EstimateReaderSvc interface {
	// GetEstimateByID retrieves a specific estimate with line items.
	GetEstimateByID(ctx context.Context, companyID, estimateID string) (*domain.Estimate, error)

	// ListEstimates retrieves a paginated list of estimates.
	ListEstimates(ctx context.Context, companyID string, params dto.ListEstimatesParams) (*dto.ListEstimatesResponse, error)
}

// EstimateWriterSvc defines write operations for estimate data
type EstimateWriterSvc interface {
	// CreateEstimate persists a new draft estimate with a company-scoped
	// estimate number and server-computed totals.
	CreateEstimate(ctx context.Context, companyID string, req dto.CreateEstimateRequest, creatorUserID string) (*domain.Estimate, error)

	// UpdateEstimate updates an estimate. Financial fields are only
	// editable while the estimate is in draft.
	UpdateEstimate(ctx context.Context, companyID, estimateID string, req dto.UpdateEstimateRequest, requestingUserID string) (*domain.Estimate, error)

	// DeleteEstimate removes a draft estimate.
	DeleteEstimate(ctx context.Context, companyID, estimateID string, requestingUserID string) error
}

// EstimateLifecycleSvc defines the estimate's send and conversion actions
type EstimateLifecycleSvc interface {
	// SendEstimate emails the estimate to the customer and moves it to
	// sent.
	SendEstimate(ctx context.Context, companyID, estimateID string, req dto.SendDocumentRequest, requestingUserID string) (*domain.Estimate, error)

	// ConvertToInvoice creates an invoice from an approved (or approvable)
	// estimate. Converting twice returns a conflict.
	ConvertToInvoice(ctx context.Context, companyID, estimateID string, requestingUserID string) (*domain.Invoice, error)

	// ExpireEstimates sweeps the company's open estimates past their
	// validUntil into expired.
	ExpireEstimates(ctx context.Context, companyID string) (int64, error)
}

// EstimateSvcFacade combines all estimate-related service interfaces
type EstimateSvcFacade interface {
	EstimateReaderSvc
	EstimateWriterSvc
	EstimateLifecycleSvc
}
