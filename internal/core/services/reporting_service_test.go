package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/core/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockEstimateRepo *MockEstimateRepository
	mockJobRepo      *MockJobRepository
	service          portssvc.ReportingSvc
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockEstimateRepo = new(MockEstimateRepository)
	suite.mockJobRepo = new(MockJobRepository)
	suite.service = services.NewReportingService(
		suite.mockTxnRepo,
		suite.mockInvoiceRepo,
		suite.mockEstimateRepo,
		suite.mockJobRepo,
	)
}

func (suite *ReportingServiceTestSuite) TestProfitLoss_ComputesTotalsAndMargin() {
	ctx := context.Background()
	companyID := uuid.NewString()

	sums := map[domain.TransactionType]map[string]decimal.Decimal{
		domain.TransactionIncome: {
			domain.CategoryServiceRevenue: decimal.NewFromInt(8000),
			"Consulting":                  decimal.NewFromInt(2000),
		},
		domain.TransactionExpense: {
			"Fuel":      decimal.NewFromInt(1500),
			"Materials": decimal.NewFromInt(1000),
		},
	}
	suite.mockTxnRepo.On("SumByTypeAndCategory", ctx, companyID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(sums, nil).Once()

	report, err := suite.service.ProfitLoss(ctx, companyID, dto.ReportPeriodParams{})

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(10000)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(2500)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(7500)))
	suite.True(report.ProfitMarginPct.Equal(decimal.NewFromInt(75)))

	// Categories come back largest first.
	suite.Require().Len(report.IncomeByCategory, 2)
	suite.Equal(domain.CategoryServiceRevenue, report.IncomeByCategory[0].Category)
	suite.Require().Len(report.ExpenseByCategory, 2)
	suite.Equal("Fuel", report.ExpenseByCategory[0].Category)
}

func (suite *ReportingServiceTestSuite) TestProfitLoss_ZeroIncomeHasZeroMargin() {
	ctx := context.Background()
	companyID := uuid.NewString()

	sums := map[domain.TransactionType]map[string]decimal.Decimal{
		domain.TransactionExpense: {"Fuel": decimal.NewFromInt(300)},
	}
	suite.mockTxnRepo.On("SumByTypeAndCategory", ctx, companyID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(sums, nil).Once()

	report, err := suite.service.ProfitLoss(ctx, companyID, dto.ReportPeriodParams{})

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.IsZero())
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(-300)))
	suite.True(report.ProfitMarginPct.IsZero())
}

func (suite *ReportingServiceTestSuite) TestProfitLoss_InvalidDateRejected() {
	ctx := context.Background()
	bad := "last tuesday"

	report, err := suite.service.ProfitLoss(ctx, uuid.NewString(), dto.ReportPeriodParams{From: &bad})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SumByTypeAndCategory",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestDashboard_AggregatesCounters() {
	ctx := context.Background()
	companyID := uuid.NewString()

	sentInvoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), Status: domain.InvoiceSent, Total: decimal.NewFromInt(200), AmountPaid: decimal.Zero},
	}
	overdueInvoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), Status: domain.InvoiceOverdue, Total: decimal.NewFromInt(500), AmountPaid: decimal.NewFromInt(100)},
	}

	suite.mockInvoiceRepo.On("ListInvoices", ctx, companyID, 100, (*string)(nil), domain.InvoiceSent, "").
		Return(sentInvoices, nil, nil).Once()
	suite.mockInvoiceRepo.On("ListInvoices", ctx, companyID, 100, (*string)(nil), domain.InvoiceViewed, "").
		Return([]domain.Invoice{}, nil, nil).Once()
	suite.mockInvoiceRepo.On("ListInvoices", ctx, companyID, 100, (*string)(nil), domain.InvoicePartial, "").
		Return([]domain.Invoice{}, nil, nil).Once()
	suite.mockInvoiceRepo.On("ListInvoices", ctx, companyID, 100, (*string)(nil), domain.InvoiceOverdue, "").
		Return(overdueInvoices, nil, nil).Once()

	suite.mockEstimateRepo.On("ListEstimates", ctx, companyID, 100, (*string)(nil), domain.EstimateSent, "").
		Return([]domain.Estimate{{EstimateID: uuid.NewString()}}, nil, nil).Once()
	suite.mockEstimateRepo.On("ListEstimates", ctx, companyID, 100, (*string)(nil), domain.EstimateViewed, "").
		Return([]domain.Estimate{}, nil, nil).Once()

	suite.mockJobRepo.On("ListJobs", ctx, companyID, 100, (*string)(nil), domain.JobScheduled, "", "").
		Return([]domain.Job{{JobID: uuid.NewString()}, {JobID: uuid.NewString()}}, nil, nil).Once()

	monthly := map[domain.TransactionType]map[string]decimal.Decimal{
		domain.TransactionIncome: {domain.CategoryServiceRevenue: decimal.NewFromInt(1200)},
	}
	suite.mockTxnRepo.On("SumByTypeAndCategory", ctx, companyID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(monthly, nil).Once()

	// Recent activity fetches the newest documents with no status filter.
	now := time.Now().UTC()
	recentInvoice := domain.Invoice{InvoiceID: uuid.NewString(), InvoiceNumber: "INV-000002", Status: domain.InvoiceSent}
	recentInvoice.CreatedAt = now
	recentEstimate := domain.Estimate{EstimateID: uuid.NewString(), EstimateNumber: "EST-000005", Status: domain.EstimateDraft}
	recentEstimate.CreatedAt = now.Add(-time.Hour)
	suite.mockInvoiceRepo.On("ListInvoices", ctx, companyID, 10, (*string)(nil), domain.InvoiceStatus(""), "").
		Return([]domain.Invoice{recentInvoice}, nil, nil).Once()
	suite.mockEstimateRepo.On("ListEstimates", ctx, companyID, 10, (*string)(nil), domain.EstimateStatus(""), "").
		Return([]domain.Estimate{recentEstimate}, nil, nil).Once()

	dash, err := suite.service.Dashboard(ctx, companyID)

	suite.Require().NoError(err)
	suite.Equal(2, dash.OutstandingInvoices)
	suite.Equal(1, dash.OverdueInvoices)
	suite.True(dash.OutstandingBalance.Equal(decimal.NewFromInt(600)))
	suite.Equal(1, dash.PendingEstimates)
	suite.Equal(2, dash.JobsScheduled)
	suite.True(dash.RevenueThisMonth.Equal(decimal.NewFromInt(1200)))
	suite.Require().Len(dash.RecentActivity, 2)
	suite.Equal("invoice", dash.RecentActivity[0].Kind)
	suite.Equal("estimate", dash.RecentActivity[1].Kind)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
