package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/handlers"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
	"github.com/tradehive/tradehive_backend/internal/utils"
)

// --- Mock LeadService ---
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) GetLeadByID(ctx context.Context, companyID, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, companyID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) ListLeads(ctx context.Context, companyID string, params dto.ListLeadsParams) (*dto.ListLeadsResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLeadsResponse), args.Error(1)
}
func (m *MockLeadService) CreateLead(ctx context.Context, companyID string, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) UpdateLead(ctx context.Context, companyID, leadID string, req dto.UpdateLeadRequest, requestingUserID string) (*domain.Lead, error) {
	args := m.Called(ctx, companyID, leadID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) DeleteLead(ctx context.Context, companyID, leadID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, leadID, requestingUserID)
	return args.Error(0)
}
func (m *MockLeadService) ConvertLead(ctx context.Context, companyID, leadID string, requestingUserID string) (*domain.Lead, *domain.Customer, error) {
	args := m.Called(ctx, companyID, leadID, requestingUserID)
	var lead *domain.Lead
	var customer *domain.Customer
	if args.Get(0) != nil {
		lead = args.Get(0).(*domain.Lead)
	}
	if args.Get(1) != nil {
		customer = args.Get(1).(*domain.Customer)
	}
	return lead, customer, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.LeadSvcFacade = (*MockLeadService)(nil)

// --- Test Suite ---
type LeadHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLeadService *MockLeadService
	cfg             *config.Config
}

// generateTestToken creates a staff JWT scoped to the given company.
func (suite *LeadHandlerTestSuite) generateTestToken(userID, companyID string) string {
	token, err := utils.GenerateJWT(userID, companyID, string(domain.RoleAdmin),
		suite.cfg.JWTSecret, time.Hour, "tradehive-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LeadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		IsProduction: true, // keeps swagger routes out of the test router
	}

	suite.mockLeadService = new(MockLeadService)

	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Lead: suite.mockLeadService,
	}, nil)
}

// --- Test Cases ---

func (suite *LeadHandlerTestSuite) TestConvertLead_Success() {
	companyID := uuid.NewString()
	leadID := uuid.NewString()
	userID := uuid.NewString()
	customerID := uuid.NewString()

	wonLead := &domain.Lead{
		LeadID:     leadID,
		CompanyID:  companyID,
		FirstName:  "Dana",
		LastName:   "Miller",
		Status:     domain.LeadWon,
		CustomerID: &customerID,
	}
	customer := &domain.Customer{
		CustomerID: customerID,
		CompanyID:  companyID,
		FirstName:  "Dana",
		LastName:   "Miller",
	}
	suite.mockLeadService.On("ConvertLead",
		mock.AnythingOfType("*context.valueCtx"), companyID, leadID, userID).
		Return(wonLead, customer, nil).Once()

	url := fmt.Sprintf("/api/v1/leads/%s/convert", leadID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.ConvertLeadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(leadID, body.Lead.LeadID)
	suite.Equal(domain.LeadWon, body.Lead.Status)
	suite.Equal(customerID, body.Customer.CustomerID)
	suite.mockLeadService.AssertExpectations(suite.T())
}

func (suite *LeadHandlerTestSuite) TestConvertLead_AlreadyConvertedConflict() {
	companyID := uuid.NewString()
	leadID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLeadService.On("ConvertLead",
		mock.AnythingOfType("*context.valueCtx"), companyID, leadID, userID).
		Return(nil, nil, fmt.Errorf("lead already converted: %w", apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/leads/%s/convert", leadID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LeadHandlerTestSuite) TestCreateLead_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	leadID := uuid.NewString()

	created := &domain.Lead{
		LeadID:    leadID,
		CompanyID: companyID,
		FirstName: "Sam",
		LastName:  "Ortiz",
		Source:    "referral",
		Status:    domain.LeadNew,
	}
	suite.mockLeadService.On("CreateLead",
		mock.AnythingOfType("*context.valueCtx"), companyID,
		mock.MatchedBy(func(r dto.CreateLeadRequest) bool {
			return r.FirstName == "Sam" && r.Source == "referral"
		}), userID).
		Return(created, nil).Once()

	payload, _ := json.Marshal(dto.CreateLeadRequest{
		FirstName: "Sam",
		LastName:  "Ortiz",
		Source:    "referral",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.LeadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(leadID, body.LeadID)
	suite.Equal(domain.LeadNew, body.Status)
	suite.mockLeadService.AssertExpectations(suite.T())
}

func (suite *LeadHandlerTestSuite) TestCreateLead_MissingFirstNameRejected() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewReader([]byte(`{"lastName":"Ortiz"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLeadService.AssertNotCalled(suite.T(), "CreateLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LeadHandlerTestSuite) TestListLeads_FiltersByStatus() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	expected := &dto.ListLeadsResponse{
		Leads: []dto.LeadResponse{
			{LeadID: uuid.NewString(), FirstName: "Ana", Status: domain.LeadQualified},
		},
	}
	suite.mockLeadService.On("ListLeads",
		mock.AnythingOfType("*context.valueCtx"), companyID,
		mock.MatchedBy(func(p dto.ListLeadsParams) bool {
			return p.Limit == 5 && p.Status == "qualified"
		})).
		Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/leads?limit=5&status=qualified", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListLeadsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Leads, 1)
	suite.Equal(domain.LeadQualified, body.Leads[0].Status)
	suite.mockLeadService.AssertExpectations(suite.T())
}

func (suite *LeadHandlerTestSuite) TestGetLead_NotFound() {
	companyID := uuid.NewString()
	leadID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLeadService.On("GetLeadByID",
		mock.AnythingOfType("*context.valueCtx"), companyID, leadID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/leads/"+leadID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LeadHandlerTestSuite) TestListLeads_MissingTokenUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/leads", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLeadService.AssertNotCalled(suite.T(), "ListLeads", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestLeadHandler(t *testing.T) {
	suite.Run(t, new(LeadHandlerTestSuite))
}
