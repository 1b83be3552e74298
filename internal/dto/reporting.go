package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriodParams defines the date range of a financial report.
// Both bounds are inclusive and default to the current calendar year.
type ReportPeriodParams struct {
	From *string `form:"from"` // YYYY-MM-DD
	To   *string `form:"to"`   // YYYY-MM-DD
}

// CategoryTotal is a single category's contribution within a report.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ProfitLossResponse defines the profit and loss report payload.
type ProfitLossResponse struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetProfit         decimal.Decimal `json:"netProfit"`
	ProfitMarginPct   decimal.Decimal `json:"profitMarginPct"`
	IncomeByCategory  []CategoryTotal `json:"incomeByCategory"`
	ExpenseByCategory []CategoryTotal `json:"expenseByCategory"`
}

// ActivityItem is a recently created document on the dashboard feed.
type ActivityItem struct {
	Kind      string          `json:"kind"` // estimate or invoice
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DashboardResponse is the at-a-glance summary for the company home view.
type DashboardResponse struct {
	OutstandingInvoices int             `json:"outstandingInvoices"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
	OverdueInvoices     int             `json:"overdueInvoices"`
	PendingEstimates    int             `json:"pendingEstimates"`
	JobsScheduled       int             `json:"jobsScheduled"`
	RevenueThisMonth    decimal.Decimal `json:"revenueThisMonth"`
	RecentActivity      []ActivityItem  `json:"recentActivity"`
}
