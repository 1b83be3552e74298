package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
)

type companyService struct {
	cfg         *config.Config
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(cfg *config.Config, companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{cfg: cfg, companyRepo: companyRepo, userRepo: userRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) requireAdmin(ctx context.Context, companyID, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to verify requesting user: %w", err)
	}
	if user.Role != domain.RoleAdmin || !user.IsActive {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	if err := s.requireAdmin(ctx, companyID, requestingUserID); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.State != nil {
		company.State = *req.State
	}
	if req.Zip != nil {
		company.Zip = *req.Zip
	}
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}
	if req.TaxID != nil {
		company.TaxID = *req.TaxID
	}
	if req.Timezone != nil {
		company.Timezone = *req.Timezone
	}
	if req.PricingModel != nil {
		company.StripePricingModel = domain.PricingModel(*req.PricingModel)
	}
	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// oauthConfig builds the Google OAuth config used for the Gmail send grant.
func (s *companyService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURL,
		Scopes:       []string{gmail.GmailSendScope, "https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}
}

func (s *companyService) GoogleAuthURL(ctx context.Context, companyID string) (string, error) {
	if s.cfg.GoogleClientID == "" {
		return "", fmt.Errorf("google integration is not configured: %w", apperrors.ErrConflict)
	}
	// The company ID rides along as state so the callback can attribute the
	// grant. The callback handler also checks it against the session.
	url := s.oauthConfig().AuthCodeURL(companyID,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	return url, nil
}

func (s *companyService) CompleteGoogleAuth(ctx context.Context, companyID, code string, requestingUserID string) (*domain.Company, error) {
	if err := s.requireAdmin(ctx, companyID, requestingUserID); err != nil {
		return nil, err
	}

	conf := s.oauthConfig()
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", apperrors.ErrUnauthorized)
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("google did not return a refresh token: %w", apperrors.ErrUnauthorized)
	}

	email, err := s.connectedEmail(ctx, conf, token)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Warn("could not resolve connected gmail address", "error", err)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	company.GoogleRefreshToken = token.RefreshToken
	company.GoogleEmail = email
	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, fmt.Errorf("failed to store google credentials: %w", err)
	}
	return company, nil
}

// connectedEmail asks Gmail which mailbox the grant belongs to.
func (s *companyService) connectedEmail(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (string, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		return "", err
	}
	profile, err := svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return profile.EmailAddress, nil
}

func (s *companyService) DisconnectGoogle(ctx context.Context, companyID string, requestingUserID string) error {
	if err := s.requireAdmin(ctx, companyID, requestingUserID); err != nil {
		return err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return err
	}
	company.GoogleRefreshToken = ""
	company.GoogleEmail = ""
	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return fmt.Errorf("failed to clear google credentials: %w", err)
	}
	return nil
}
