package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/core/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockCustomerRepo *MockCustomerRepository
	mockCompanyRepo  *MockCompanyRepository
	mockNotifier     *MockNotificationSvc
	service          portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockNotifier = new(MockNotificationSvc)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockCustomerRepo,
		suite.mockCompanyRepo,
		suite.mockNotifier,
	)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ComputesTotals() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()

	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Title:      "Spring maintenance",
		TaxRate:    decimal.NewFromInt(10),
		LineItems: []dto.LineItemRequest{
			{Description: "Service call", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, companyID, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	suite.mockCompanyRepo.On("NextInvoiceNumber", ctx, companyID).Return("INV-000001", nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Subtotal.Equal(decimal.NewFromInt(200)) &&
			inv.Tax.Equal(decimal.NewFromInt(20)) &&
			inv.Total.Equal(decimal.NewFromInt(220)) &&
			inv.Status == domain.InvoiceDraft &&
			inv.DueDate != nil
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, companyID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(invoice.Total.Equal(decimal.NewFromInt(220)))
	suite.True(invoice.BalanceDue().Equal(decimal.NewFromInt(220)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_BuildsPaymentAndIncomeEntry() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()
	userID := uuid.NewString()

	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		CompanyID:     companyID,
		InvoiceNumber: "INV-000005",
		Status:        domain.InvoiceSent,
		Total:         decimal.NewFromInt(220),
		AmountPaid:    decimal.Zero,
	}
	partial := &domain.Invoice{
		InvoiceID:  invoiceID,
		CompanyID:  companyID,
		Status:     domain.InvoicePartial,
		Total:      decimal.NewFromInt(220),
		AmountPaid: decimal.NewFromInt(100),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.InvoiceID == invoiceID &&
			p.Method == domain.PaymentMethodCheck &&
			p.StripePaymentID == nil &&
			p.Amount.Equal(decimal.NewFromInt(100))
	}), mock.MatchedBy(func(t *domain.Transaction) bool {
		return t.Type == domain.TransactionIncome &&
			t.Category == domain.CategoryServiceRevenue &&
			t.Amount.Equal(decimal.NewFromInt(100)) &&
			t.InvoiceID != nil && *t.InvoiceID == invoiceID
	})).Return(partial, nil).Once()

	updated, err := suite.service.RecordPayment(ctx, companyID, invoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: "check",
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePartial, updated.Status)
	suite.True(updated.BalanceDue().Equal(decimal.NewFromInt(120)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_TerminalInvoiceRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()

	void := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceVoid}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(void, nil).Once()

	updated, err := suite.service.RecordPayment(ctx, companyID, invoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(50),
		Method: "cash",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_NonPositiveAmountRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()

	invoice := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSent, Total: decimal.NewFromInt(100)}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.RecordPayment(ctx, companyID, invoiceID, dto.RecordPaymentRequest{
		Amount: decimal.Zero,
		Method: "cash",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_OpenInvoice() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()
	userID := uuid.NewString()

	overdue := &domain.Invoice{InvoiceID: invoiceID, CompanyID: companyID, Status: domain.InvoiceOverdue}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(overdue, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, companyID, invoiceID, domain.InvoiceVoid,
		(*time.Time)(nil), userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	voided, err := suite.service.VoidInvoice(ctx, companyID, invoiceID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceVoid, voided.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_PaidInvoiceRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()

	paid := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoicePaid}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(paid, nil).Once()

	voided, err := suite.service.VoidInvoice(ctx, companyID, invoiceID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(voided)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestSweepOverdue() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockInvoiceRepo.On("MarkOverdueInvoices", ctx, companyID, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil).Once()

	swept, err := suite.service.SweepOverdue(ctx, companyID)

	suite.Require().NoError(err)
	suite.Equal(int64(2), swept)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
