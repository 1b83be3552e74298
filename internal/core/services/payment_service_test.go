package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradehive/tradehive_backend/internal/adapters/payments"
	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/core/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockCompanyRepo  *MockCompanyRepository
	mockCustomerRepo *MockCustomerRepository
	mockProvider     *MockCheckoutProvider
	mockConnect      *MockConnectProvider
	mockNotifier     *MockNotificationSvc
	service          portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockProvider = new(MockCheckoutProvider)
	suite.mockConnect = new(MockConnectProvider)
	suite.mockNotifier = new(MockNotificationSvc)
	cfg := &config.Config{AppBaseURL: "https://app.example.com"}
	suite.service = services.NewPaymentService(
		cfg,
		suite.mockInvoiceRepo,
		suite.mockCompanyRepo,
		suite.mockCustomerRepo,
		suite.mockProvider,
		suite.mockConnect,
		payments.PassThroughFeeCents,
		suite.mockNotifier,
	)
}

func (suite *PaymentServiceTestSuite) TestCreateCheckout_StandardPricingNoFee() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()

	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		CompanyID:     companyID,
		CustomerID:    customerID,
		InvoiceNumber: "INV-000001",
		Title:         "Gutter cleaning",
		Status:        domain.InvoiceSent,
		Total:         decimal.NewFromFloat(220.00),
		AmountPaid:    decimal.Zero,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(invoice, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID, StripePricingModel: domain.PricingStandard}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, companyID, customerID).
		Return(&domain.Customer{CustomerID: customerID, Email: "pay@customer.test"}, nil).Once()
	suite.mockProvider.On("CreateSession", ctx, mock.MatchedBy(func(p portssvc.CheckoutParams) bool {
		return p.AmountCents == 22000 && p.FeeCents == 0 && p.CustomerEmail == "pay@customer.test"
	})).Return(&portssvc.CheckoutSession{SessionID: "cs_123", CheckoutURL: "https://checkout.test/cs_123"}, nil).Once()

	res, err := suite.service.CreateCheckout(ctx, companyID, dto.CreateCheckoutRequest{InvoiceID: invoiceID}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("cs_123", res.SessionID)
	suite.Equal("https://checkout.test/cs_123", res.CheckoutURL)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateCheckout_PassThroughAddsFee() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()

	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		CompanyID:  companyID,
		CustomerID: customerID,
		Status:     domain.InvoiceSent,
		Total:      decimal.NewFromFloat(100.00),
		AmountPaid: decimal.Zero,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(invoice, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID, StripePricingModel: domain.PricingPassThrough}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, companyID, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()

	wantFee := payments.PassThroughFeeCents(10000)
	suite.mockProvider.On("CreateSession", ctx, mock.MatchedBy(func(p portssvc.CheckoutParams) bool {
		return p.AmountCents == 10000 && p.FeeCents == wantFee
	})).Return(&portssvc.CheckoutSession{SessionID: "cs_456", CheckoutURL: "https://checkout.test/cs_456"}, nil).Once()

	_, err := suite.service.CreateCheckout(ctx, companyID, dto.CreateCheckoutRequest{InvoiceID: invoiceID}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Positive(wantFee)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateCheckout_PaidInvoiceRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()

	paid := &domain.Invoice{
		InvoiceID:  invoiceID,
		Status:     domain.InvoicePaid,
		Total:      decimal.NewFromInt(100),
		AmountPaid: decimal.NewFromInt(100),
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(paid, nil).Once()

	res, err := suite.service.CreateCheckout(ctx, companyID, dto.CreateCheckoutRequest{InvoiceID: invoiceID}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(res)
	suite.mockProvider.AssertNotCalled(suite.T(), "CreateSession", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestHandleWebhook_AppliesFullPayment() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()
	payload := []byte(`{"id":"evt_1"}`)

	completed := &portssvc.CompletedCheckout{
		InvoiceID:       invoiceID,
		CompanyID:       companyID,
		PaymentIntentID: "pi_123",
		AmountCents:     22000,
	}
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		CompanyID:  companyID,
		Status:     domain.InvoiceSent,
		Total:      decimal.NewFromFloat(220.00),
		AmountPaid: decimal.Zero,
	}
	paidInvoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		CompanyID:  companyID,
		Status:     domain.InvoicePaid,
		Total:      decimal.NewFromFloat(220.00),
		AmountPaid: decimal.NewFromFloat(220.00),
	}

	suite.mockProvider.On("VerifyEvent", payload, "sig").Return(completed, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Method == domain.PaymentMethodCard &&
			p.StripePaymentID != nil && *p.StripePaymentID == "pi_123" &&
			p.Amount.Equal(decimal.NewFromFloat(220.00))
	}), mock.MatchedBy(func(t *domain.Transaction) bool {
		return t.Type == domain.TransactionIncome &&
			t.Category == domain.CategoryServiceRevenue &&
			t.InvoiceID != nil && *t.InvoiceID == invoiceID
	})).Return(paidInvoice, nil).Once()
	suite.mockNotifier.On("SendPaymentReceiptEmail", ctx, companyID, paidInvoice, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()

	err := suite.service.HandleWebhook(ctx, payload, "sig")

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestHandleWebhook_DuplicateEventIsNoOp() {
	ctx := context.Background()
	companyID := uuid.NewString()
	invoiceID := uuid.NewString()
	payload := []byte(`{"id":"evt_replay"}`)

	completed := &portssvc.CompletedCheckout{
		InvoiceID:       invoiceID,
		CompanyID:       companyID,
		PaymentIntentID: "pi_replayed",
		AmountCents:     5000,
	}
	invoice := &domain.Invoice{InvoiceID: invoiceID, CompanyID: companyID, Status: domain.InvoicePaid}

	suite.mockProvider.On("VerifyEvent", payload, "sig").Return(completed, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, companyID, invoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("*domain.Transaction")).
		Return(nil, apperrors.ErrDuplicate).Once()

	err := suite.service.HandleWebhook(ctx, payload, "sig")

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNotCalled(suite.T(), "SendPaymentReceiptEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestHandleWebhook_IgnoresOtherEventTypes() {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_other"}`)

	suite.mockProvider.On("VerifyEvent", payload, "sig").Return(nil, nil).Once()

	err := suite.service.HandleWebhook(ctx, payload, "sig")

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestHandleWebhook_BadSignatureRejected() {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_bad"}`)

	suite.mockProvider.On("VerifyEvent", payload, "bad-sig").Return(nil, apperrors.ErrUnauthorized).Once()

	err := suite.service.HandleWebhook(ctx, payload, "bad-sig")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *PaymentServiceTestSuite) TestCreateOnboardingLink_CreatesAccountOnce() {
	ctx := context.Background()
	companyID := uuid.NewString()
	userID := uuid.NewString()

	company := &domain.Company{CompanyID: companyID, Email: "owner@acme.test"}
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockConnect.On("CreateConnectAccount", ctx, "owner@acme.test").Return("acct_123", nil).Once()
	suite.mockCompanyRepo.On("UpdateCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.StripeAccountID == "acct_123" && c.LastUpdatedBy == userID
	})).Return(nil).Once()
	suite.mockConnect.On("CreateAccountLink", ctx, "acct_123",
		"https://app.example.com/settings/payments?refresh=true",
		"https://app.example.com/settings/payments?success=true").
		Return("https://connect.stripe.test/onboard", nil).Once()

	res, err := suite.service.CreateOnboardingLink(ctx, companyID, userID)

	suite.Require().NoError(err)
	suite.Equal("https://connect.stripe.test/onboard", res.URL)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
	suite.mockConnect.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateOnboardingLink_ReusesExistingAccount() {
	ctx := context.Background()
	companyID := uuid.NewString()

	company := &domain.Company{CompanyID: companyID, StripeAccountID: "acct_existing"}
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockConnect.On("CreateAccountLink", ctx, "acct_existing", mock.Anything, mock.Anything).
		Return("https://connect.stripe.test/onboard-again", nil).Once()

	res, err := suite.service.CreateOnboardingLink(ctx, companyID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("https://connect.stripe.test/onboard-again", res.URL)
	suite.mockConnect.AssertNotCalled(suite.T(), "CreateConnectAccount", mock.Anything, mock.Anything)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "UpdateCompany", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreateDashboardLink_RequiresConnectedAccount() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID}, nil).Once()

	res, err := suite.service.CreateDashboardLink(ctx, companyID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(res)
	suite.mockConnect.AssertNotCalled(suite.T(), "CreateLoginLink", mock.Anything, mock.Anything)
}

func TestPassThroughFeeCents(t *testing.T) {
	// The company must net the original amount after 2.9% + 30c is taken
	// from the grossed-up charge.
	for _, amount := range []int64{100, 5000, 10000, 22000, 123457} {
		fee := payments.PassThroughFeeCents(amount)
		gross := amount + fee
		processorCut := int64(float64(gross)*0.029) + 30
		if gross-processorCut < amount {
			t.Errorf("amount %d: fee %d leaves the company short", amount, fee)
		}
	}
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
