package repositories

import (
	"context"
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// EstimateReader defines read operations for estimate data
type EstimateReader interface {
	// FindEstimateByID retrieves a specific estimate and its line items
	// within a company.
	FindEstimateByID(ctx context.Context, companyID, estimateID string) (*domain.Estimate, error)

	// ListEstimates retrieves a paginated list of estimates for a company
	// using token-based pagination, optionally filtered by status or
	// customer. Line items are loaded for each returned estimate.
	ListEstimates(ctx context.Context, companyID string, limit int, nextToken *string, status domain.EstimateStatus, customerID string) ([]domain.Estimate, *string, error)

	// ListEstimatesByCustomer retrieves all non-draft estimates belonging
	// to a customer, newest first. Used by the customer portal.
	ListEstimatesByCustomer(ctx context.Context, companyID, customerID string) ([]domain.Estimate, error)
}

// EstimateWriter defines write operations for estimate data
type EstimateWriter interface {
	// SaveEstimate persists an estimate and its line items in a single
	// database transaction.
	SaveEstimate(ctx context.Context, estimate domain.Estimate) error

	// UpdateEstimate updates an estimate and replaces its line items in a
	// single database transaction.
	UpdateEstimate(ctx context.Context, estimate domain.Estimate) error

	// UpdateEstimateStatus updates only the status and response timestamps.
	UpdateEstimateStatus(ctx context.Context, companyID, estimateID string, status domain.EstimateStatus, approvedAt, rejectedAt *time.Time, updatedBy string, updatedAt time.Time) error

	// DeleteEstimate removes an estimate and its line items.
	DeleteEstimate(ctx context.Context, companyID, estimateID string) error

	// MarkExpiredEstimates moves every open estimate whose validUntil has
	// passed to expired, returning the number affected.
	MarkExpiredEstimates(ctx context.Context, companyID string, now time.Time) (int64, error)
}

// EstimateRepositoryFacade combines all estimate-related repository interfaces
type EstimateRepositoryFacade interface {
	EstimateReader
	EstimateWriter
}
