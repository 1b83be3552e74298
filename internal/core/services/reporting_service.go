package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

type reportingService struct {
	txnRepo      portsrepo.TransactionAggregator
	invoiceRepo  portsrepo.InvoiceReader
	estimateRepo portsrepo.EstimateReader
	jobRepo      portsrepo.JobReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	txnRepo portsrepo.TransactionAggregator,
	invoiceRepo portsrepo.InvoiceReader,
	estimateRepo portsrepo.EstimateReader,
	jobRepo portsrepo.JobReader,
) portssvc.ReportingSvc {
	return &reportingService{
		txnRepo:      txnRepo,
		invoiceRepo:  invoiceRepo,
		estimateRepo: estimateRepo,
		jobRepo:      jobRepo,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) ProfitLoss(ctx context.Context, companyID string, params dto.ReportPeriodParams) (*dto.ProfitLossResponse, error) {
	now := time.Now().UTC()

	// Default period is the current calendar year.
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, time.UTC)

	if parsed, err := parseDateFilter(params.From); err != nil {
		return nil, err
	} else if parsed != nil {
		from = *parsed
	}
	if parsed, err := parseDateFilter(params.To); err != nil {
		return nil, err
	} else if parsed != nil {
		// Make the upper bound cover the whole day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	sums, err := s.txnRepo.SumByTypeAndCategory(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	incomeByCategory, totalIncome := categoryTotals(sums[domain.TransactionIncome])
	expenseByCategory, totalExpenses := categoryTotals(sums[domain.TransactionExpense])

	netProfit := totalIncome.Sub(totalExpenses)
	margin := decimal.Zero
	if totalIncome.IsPositive() {
		margin = netProfit.Div(totalIncome).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &dto.ProfitLossResponse{
		From:              from,
		To:                to,
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		NetProfit:         netProfit,
		ProfitMarginPct:   margin,
		IncomeByCategory:  incomeByCategory,
		ExpenseByCategory: expenseByCategory,
	}, nil
}

// categoryTotals flattens a category sum map into a stable, largest-first
// list plus its grand total.
func categoryTotals(sums map[string]decimal.Decimal) ([]dto.CategoryTotal, decimal.Decimal) {
	totals := make([]dto.CategoryTotal, 0, len(sums))
	grand := decimal.Zero
	for category, total := range sums {
		totals = append(totals, dto.CategoryTotal{Category: category, Total: total})
		grand = grand.Add(total)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Category < totals[j].Category
		}
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, grand
}

func (s *reportingService) Dashboard(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	res := &dto.DashboardResponse{
		OutstandingBalance: decimal.Zero,
		RevenueThisMonth:   decimal.Zero,
	}

	openStatuses := []domain.InvoiceStatus{domain.InvoiceSent, domain.InvoiceViewed, domain.InvoicePartial, domain.InvoiceOverdue}
	for _, status := range openStatuses {
		invoices, err := s.collectInvoices(ctx, companyID, status)
		if err != nil {
			return nil, err
		}
		res.OutstandingInvoices += len(invoices)
		if status == domain.InvoiceOverdue {
			res.OverdueInvoices = len(invoices)
		}
		for _, inv := range invoices {
			res.OutstandingBalance = res.OutstandingBalance.Add(inv.BalanceDue())
		}
	}

	for _, status := range []domain.EstimateStatus{domain.EstimateSent, domain.EstimateViewed} {
		count, err := s.countEstimates(ctx, companyID, status)
		if err != nil {
			return nil, err
		}
		res.PendingEstimates += count
	}

	jobs, err := s.countJobs(ctx, companyID, domain.JobScheduled)
	if err != nil {
		return nil, err
	}
	res.JobsScheduled = jobs

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	sums, err := s.txnRepo.SumByTypeAndCategory(ctx, companyID, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	for _, total := range sums[domain.TransactionIncome] {
		res.RevenueThisMonth = res.RevenueThisMonth.Add(total)
	}

	activity, err := s.recentActivity(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res.RecentActivity = activity
	return res, nil
}

// recentActivityLimit bounds both the per-kind fetch and the merged feed.
const recentActivityLimit = 10

// recentActivity merges the newest estimates and invoices into a single
// feed, newest first.
func (s *reportingService) recentActivity(ctx context.Context, companyID string) ([]dto.ActivityItem, error) {
	invoices, _, err := s.invoiceRepo.ListInvoices(ctx, companyID, recentActivityLimit, nil, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to list recent invoices: %w", err)
	}
	estimates, _, err := s.estimateRepo.ListEstimates(ctx, companyID, recentActivityLimit, nil, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to list recent estimates: %w", err)
	}

	items := make([]dto.ActivityItem, 0, len(invoices)+len(estimates))
	for _, inv := range invoices {
		items = append(items, dto.ActivityItem{
			Kind:      "invoice",
			ID:        inv.InvoiceID,
			Number:    inv.InvoiceNumber,
			Title:     inv.Title,
			Status:    string(inv.Status),
			Total:     inv.Total,
			CreatedAt: inv.CreatedAt,
		})
	}
	for _, est := range estimates {
		items = append(items, dto.ActivityItem{
			Kind:      "estimate",
			ID:        est.EstimateID,
			Number:    est.EstimateNumber,
			Title:     est.Title,
			Status:    string(est.Status),
			Total:     est.Total,
			CreatedAt: est.CreatedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > recentActivityLimit {
		items = items[:recentActivityLimit]
	}
	return items, nil
}

// dashboardPageSize bounds each page while walking a full status bucket.
const dashboardPageSize = 100

func (s *reportingService) collectInvoices(ctx context.Context, companyID string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	var all []domain.Invoice
	var token *string
	for {
		page, next, err := s.invoiceRepo.ListInvoices(ctx, companyID, dashboardPageSize, token, status, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s invoices: %w", status, err)
		}
		all = append(all, page...)
		if next == nil {
			return all, nil
		}
		token = next
	}
}

func (s *reportingService) countEstimates(ctx context.Context, companyID string, status domain.EstimateStatus) (int, error) {
	count := 0
	var token *string
	for {
		page, next, err := s.estimateRepo.ListEstimates(ctx, companyID, dashboardPageSize, token, status, "")
		if err != nil {
			return 0, fmt.Errorf("failed to list %s estimates: %w", status, err)
		}
		count += len(page)
		if next == nil {
			return count, nil
		}
		token = next
	}
}

func (s *reportingService) countJobs(ctx context.Context, companyID string, status domain.JobStatus) (int, error) {
	count := 0
	var token *string
	for {
		page, next, err := s.jobRepo.ListJobs(ctx, companyID, dashboardPageSize, token, status, "", "")
		if err != nil {
			return 0, fmt.Errorf("failed to list %s jobs: %w", status, err)
		}
		count += len(page)
		if next == nil {
			return count, nil
		}
		token = next
	}
}
