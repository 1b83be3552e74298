package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/core/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
	"github.com/tradehive/tradehive_backend/internal/utils"
)

type PortalServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockCompanyRepo  *MockCompanyRepository
	mockEstimateRepo *MockEstimateRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockNotifier     *MockNotificationSvc
	cfg              *config.Config
	service          portssvc.PortalSvc
}

func (suite *PortalServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockEstimateRepo = new(MockEstimateRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockNotifier = new(MockNotificationSvc)
	suite.cfg = &config.Config{
		AppBaseURL:            "https://app.example.com",
		JWTSecret:             "test-secret",
		JWTIssuer:             "tradehive-test",
		PortalTokenTTL:        15 * time.Minute,
		PortalSessionDuration: 24 * time.Hour,
	}
	suite.service = services.NewPortalService(
		suite.cfg,
		suite.mockCustomerRepo,
		suite.mockCompanyRepo,
		suite.mockEstimateRepo,
		suite.mockInvoiceRepo,
		suite.mockNotifier,
	)
}

func (suite *PortalServiceTestSuite) TestRequestLogin_KnownEmailSendsLink() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()

	customer := &domain.Customer{CustomerID: customerID, CompanyID: companyID, Email: "jo@customer.test"}
	company := &domain.Company{CompanyID: companyID, Name: "Hive Plumbing"}

	suite.mockCustomerRepo.On("FindCustomerByEmail", ctx, "jo@customer.test").Return(customer, nil).Once()
	suite.mockCustomerRepo.On("SetPortalToken", ctx, companyID, customerID,
		mock.MatchedBy(func(token string) bool { return len(token) == 64 }),
		mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockNotifier.On("SendPortalLoginEmail", ctx, company, customer,
		mock.MatchedBy(func(url string) bool {
			return len(url) > len("https://app.example.com/portal/verify?token=")
		})).Return(nil).Once()

	err := suite.service.RequestLogin(ctx, dto.PortalLoginRequest{Email: "jo@customer.test"})

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PortalServiceTestSuite) TestRequestLogin_UnknownEmailIsSilentSuccess() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByEmail", ctx, "nobody@customer.test").
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequestLogin(ctx, dto.PortalLoginRequest{Email: "nobody@customer.test"})

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "SetPortalToken",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "SendPortalLoginEmail",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PortalServiceTestSuite) TestVerifyToken_IssuesSessionAndConsumesLink() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()

	customer := &domain.Customer{CustomerID: customerID, CompanyID: companyID, FirstName: "Jo"}
	suite.mockCustomerRepo.On("FindCustomerByPortalToken", ctx, "magic-token", mock.AnythingOfType("time.Time")).
		Return(customer, nil).Once()
	suite.mockCustomerRepo.On("ClearPortalToken", ctx, companyID, customerID).Return(nil).Once()

	res, err := suite.service.VerifyToken(ctx, dto.PortalVerifyRequest{Token: "magic-token"})

	suite.Require().NoError(err)
	suite.Require().NotNil(res)
	suite.Equal(customerID, res.Customer.CustomerID)

	claims, err := utils.ParseAndValidateJWT(res.Token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(customerID, claims.Subject)
	suite.Equal(companyID, claims.CompanyID)
	suite.Equal(utils.AudiencePortal, claims.Audience)

	// The token must be cleared before the session is issued.
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *PortalServiceTestSuite) TestVerifyToken_ExpiredTokenRejected() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByPortalToken", ctx, "stale-token", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	res, err := suite.service.VerifyToken(ctx, dto.PortalVerifyRequest{Token: "stale-token"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(res)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "ClearPortalToken", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PortalServiceTestSuite) TestGetEstimate_MarksSentViewed() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()
	estimateID := uuid.NewString()

	sent := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		CustomerID: customerID,
		Status:     domain.EstimateSent,
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(sent, nil).Once()
	suite.mockEstimateRepo.On("UpdateEstimateStatus", ctx, companyID, estimateID, domain.EstimateViewed,
		(*time.Time)(nil), (*time.Time)(nil), customerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	estimate, err := suite.service.GetEstimate(ctx, companyID, customerID, estimateID)

	suite.Require().NoError(err)
	suite.Equal(domain.EstimateViewed, estimate.Status)
	suite.mockEstimateRepo.AssertExpectations(suite.T())
}

func (suite *PortalServiceTestSuite) TestGetEstimate_OtherCustomersEstimateHidden() {
	ctx := context.Background()
	companyID := uuid.NewString()
	estimateID := uuid.NewString()

	other := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		CustomerID: uuid.NewString(),
		Status:     domain.EstimateSent,
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(other, nil).Once()

	estimate, err := suite.service.GetEstimate(ctx, companyID, uuid.NewString(), estimateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(estimate)
}

func (suite *PortalServiceTestSuite) TestRespondToEstimate_Approves() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()
	estimateID := uuid.NewString()

	viewed := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		CustomerID: customerID,
		Status:     domain.EstimateViewed,
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(viewed, nil).Once()
	suite.mockEstimateRepo.On("UpdateEstimateStatus", ctx, companyID, estimateID, domain.EstimateApproved,
		mock.AnythingOfType("*time.Time"), (*time.Time)(nil), customerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	estimate, err := suite.service.RespondToEstimate(ctx, companyID, customerID, estimateID, dto.RespondToEstimateRequest{Response: "approved"})

	suite.Require().NoError(err)
	suite.Equal(domain.EstimateApproved, estimate.Status)
	suite.NotNil(estimate.ApprovedAt)
	suite.Nil(estimate.RejectedAt)
}

func (suite *PortalServiceTestSuite) TestRespondToEstimate_AlreadyRespondedConflicts() {
	ctx := context.Background()
	companyID := uuid.NewString()
	customerID := uuid.NewString()
	estimateID := uuid.NewString()

	approved := &domain.Estimate{
		EstimateID: estimateID,
		CompanyID:  companyID,
		CustomerID: customerID,
		Status:     domain.EstimateApproved,
	}
	suite.mockEstimateRepo.On("FindEstimateByID", ctx, companyID, estimateID).Return(approved, nil).Once()

	estimate, err := suite.service.RespondToEstimate(ctx, companyID, customerID, estimateID, dto.RespondToEstimateRequest{Response: "rejected"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(estimate)
	suite.mockEstimateRepo.AssertNotCalled(suite.T(), "UpdateEstimateStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPortalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortalServiceTestSuite))
}
