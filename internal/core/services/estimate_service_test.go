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

type EstimateServiceTestSuite struct {
	suite.Suite
	mockEstimateRepo *MockEstimateRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockCustomerRepo *MockCustomerRepository
	mockCompanyRepo  *MockCompanyRepository
	mockNotifier     *MockNotificationSvc
	service          portssvc.EstimateSvcFacade
}

func (suite *EstimateServiceTestSuite) SetupTest() {
	suite.mockEstimateRepo = new(MockEstimateRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockNotifier = new(MockNotificationSvc)
	suite.service = services.NewEstimateService(
		suite.mockEstimateRepo,
		suite.mockInvoiceRepo,
		suite.mockCustomerRepo,
		suite.mockCompanyRepo,
		suite.mockNotifier,
	)
}

func (suite *EstimateServiceTestSuite) TestCreateEstimate_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()
	userID := uuid.NewString()

	req := dto.CreateEstimateRequest{
		CustomerID: customerID,
		Title:      "Water heater replacement",
		TaxRate:    decimal.NewFromInt(10),
		LineItems: []dto.LineItemRequest{
			{Description: "Labor", Quantity: decimal.NewFromInt(4), Rate: decimal.NewFromInt(50)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, companyID, customerID).
		Return(&domain.Customer{CustomerID: customerID, CompanyID: companyID}, nil).Once()
	suite.mockCompanyRepo.On("NextEstimateNumber", ctx, companyID).Return("EST-000007", nil).Once()
	suite.mockEstimateRepo.On("SaveEstimate", ctx, mock.MatchedBy(func(e domain.Estimate) bool {
		return e.EstimateNumber == "EST-000007" &&
			e.Status == domain.EstimateDraft &&
			e.Subtotal.Equal(decimal.NewFromInt(200)) &&
			e.Tax.Equal(decimal.NewFromInt(20)) &&
			e.Total.Equal(decimal.NewFromInt(220)) &&
			len(e.LineItems) == 1 && e.LineItems[0].LineItemID != ""
	})).Return(nil).Once()

	estimate, err := suite.service.CreateEstimate(ctx, companyID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(estimate)
	suite.Equal("EST-000007", estimate.EstimateNumber)
	suite.Equal(domain.EstimateDraft, estimate.Status)
	suite.True(estimate.Total.Equal(decimal.NewFromInt(220)))
	suite.mockEstimateRepo.AssertExpectations(suite.T())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *EstimateServiceTestSuite) TestCreateEstimate_UnknownCustomer() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()

	req := dto.CreateEstimateRequest{
		CustomerID: customerID,
		Title:      "Fence repair",
		LineItems:  []dto.LineItemRequest{{Description: "Materials", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(80)}},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, companyID, customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	estimate, err := suite.service.CreateEstimate(ctx, companyID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(estimate)
	suite.mockEstimateRepo.AssertNotCalled(suite.T(), "SaveEstimate", mock.Anything, mock.Anything)
}

func (suite *EstimateServiceTestSuite) TestUpdateEstimate_FinancialEditAfterDraftRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	sent := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		Status:     domain.EstimateSent,
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(sent, nil).Once()

	newRate := decimal.NewFromInt(5)
	updated, err := suite.service.UpdateEstimate(ctx, companyID, estimateID, dto.UpdateEstimateRequest{TaxRate: &newRate}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
	suite.mockEstimateRepo.AssertNotCalled(suite.T(), "UpdateEstimate", mock.Anything, mock.Anything)
}

func (suite *EstimateServiceTestSuite) TestDeleteEstimate_NonDraftRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).
		Return(&domain.Estimate{EstimateID: estimateID, Status: domain.EstimateApproved}, nil).Once()

	err := suite.service.DeleteEstimate(ctx, companyID, estimateID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEstimateRepo.AssertNotCalled(suite.T(), "DeleteEstimate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EstimateServiceTestSuite) TestSendEstimate_MovesDraftToSent() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()
	userID := uuid.NewString()

	draft := &domain.Estimate{
		EstimateID:     estimateID,
		CompanyID:      companyID,
		EstimateNumber: "EST-000001",
		Status:         domain.EstimateDraft,
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(draft, nil).Once()
	suite.mockNotifier.On("SendEstimateEmail", ctx, companyID, draft, "see attached").Return(nil).Once()
	suite.mockEstimateRepo.On("UpdateEstimateStatus", ctx, companyID, estimateID, domain.EstimateSent,
		(*time.Time)(nil), (*time.Time)(nil), userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	estimate, err := suite.service.SendEstimate(ctx, companyID, estimateID, dto.SendDocumentRequest{Message: "see attached"}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EstimateSent, estimate.Status)
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockEstimateRepo.AssertExpectations(suite.T())
}

func (suite *EstimateServiceTestSuite) TestSendEstimate_EmailFailureKeepsDraft() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	draft := &domain.Estimate{EstimateID: estimateID, CompanyID: companyID, Status: domain.EstimateDraft}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(draft, nil).Once()
	suite.mockNotifier.On("SendEstimateEmail", ctx, companyID, draft, "").Return(context.DeadlineExceeded).Once()

	estimate, err := suite.service.SendEstimate(ctx, companyID, estimateID, dto.SendDocumentRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(estimate)
	suite.mockEstimateRepo.AssertNotCalled(suite.T(), "UpdateEstimateStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EstimateServiceTestSuite) TestConvertToInvoice_ApprovedEstimate() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()
	customerID := uuid.NewString()
	userID := uuid.NewString()

	approved := &domain.Estimate{
		EstimateID:     estimateID,
		CompanyID:      companyID,
		CustomerID:     customerID,
		EstimateNumber: "EST-000003",
		Title:          "Deck build",
		Status:         domain.EstimateApproved,
		LineItems: []domain.LineItem{
			{LineItemID: uuid.NewString(), Description: "Lumber", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500), Amount: decimal.NewFromInt(500), Type: domain.LineItemMaterial},
		},
		Subtotal: decimal.NewFromInt(500),
		TaxRate:  decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.NewFromInt(500),
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(approved, nil).Once()
	suite.mockCompanyRepo.On("NextInvoiceNumber", ctx, companyID).Return("INV-000009", nil).Once()
	suite.mockInvoiceRepo.On("ConvertEstimate", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-000009" &&
			inv.EstimateID != nil && *inv.EstimateID == estimateID &&
			inv.CustomerID == customerID &&
			inv.Status == domain.InvoiceDraft &&
			inv.Total.Equal(decimal.NewFromInt(500)) &&
			inv.DueDate != nil
	}), false, mock.AnythingOfType("time.Time")).Return(nil).Once()

	invoice, err := suite.service.ConvertToInvoice(ctx, companyID, estimateID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal("INV-000009", invoice.InvoiceNumber)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *EstimateServiceTestSuite) TestConvertToInvoice_OpenEstimateMarksApproved() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	sent := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		CustomerID: uuid.NewString(),
		Status:     domain.EstimateSent,
		Subtotal:   decimal.NewFromInt(100),
		Total:      decimal.NewFromInt(100),
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(sent, nil).Once()
	suite.mockCompanyRepo.On("NextInvoiceNumber", ctx, companyID).Return("INV-000010", nil).Once()
	suite.mockInvoiceRepo.On("ConvertEstimate", ctx, mock.AnythingOfType("domain.Invoice"), true, mock.AnythingOfType("time.Time")).Return(nil).Once()

	invoice, err := suite.service.ConvertToInvoice(ctx, companyID, estimateID, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(invoice)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *EstimateServiceTestSuite) TestConvertToInvoice_RejectedEstimateConflicts() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	rejected := &domain.Estimate{EstimateID: estimateID, CompanyID: companyID, Status: domain.EstimateRejected}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(rejected, nil).Once()

	invoice, err := suite.service.ConvertToInvoice(ctx, companyID, estimateID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(invoice)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "NextInvoiceNumber", mock.Anything, mock.Anything)
}

func (suite *EstimateServiceTestSuite) TestConvertToInvoice_SecondConversionConflicts() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	approved := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		CustomerID: uuid.NewString(),
		Status:     domain.EstimateApproved,
		Total:      decimal.NewFromInt(50),
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(approved, nil).Once()
	suite.mockCompanyRepo.On("NextInvoiceNumber", ctx, companyID).Return("INV-000011", nil).Once()
	suite.mockInvoiceRepo.On("ConvertEstimate", ctx, mock.AnythingOfType("domain.Invoice"), false, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	invoice, err := suite.service.ConvertToInvoice(ctx, companyID, estimateID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(invoice)
}

func (suite *EstimateServiceTestSuite) TestExpireEstimates() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockEstimateRepo.On("MarkExpiredEstimates", ctx, companyID, mock.AnythingOfType("time.Time")).
		Return(int64(3), nil).Once()

	expired, err := suite.service.ExpireEstimates(ctx, companyID)

	suite.Require().NoError(err)
	suite.Equal(int64(3), expired)
	suite.mockEstimateRepo.AssertExpectations(suite.T())
}

func TestEstimateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EstimateServiceTestSuite))
}
