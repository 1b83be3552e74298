package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/dto"
)

// ReportingSvc builds financial summaries from recorded transactions and
// open documents.
type ReportingSvc interface {
	// ProfitLoss computes income, expenses, net profit and margin for the
	// period, with per-category breakdowns.
	ProfitLoss(ctx context.Context, companyID string, params dto.ReportPeriodParams) (*dto.ProfitLossResponse, error)

	// Dashboard computes the at-a-glance counters for the company home view.
	Dashboard(ctx context.Context, companyID string) (*dto.DashboardResponse, error)
}
