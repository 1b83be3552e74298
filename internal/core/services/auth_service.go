package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
	"github.com/tradehive/tradehive_backend/internal/utils"
)

// authService registers companies and signs staff in.
type authService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	cfg         *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvc {
	return &authService{companyRepo: companyRepo, userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	company := domain.Company{
		CompanyID:          uuid.NewString(),
		Name:               req.CompanyName,
		Email:              email,
		Timezone:           "America/New_York",
		StripePricingModel: domain.PricingStandard,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
		},
	}
	user := domain.User{
		UserID:       userID,
		CompanyID:    company.CompanyID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("company registered", slog.String("company_id", company.CompanyID))
	return s.buildAuthResponse(&user, &company)
}

func (s *authService) Signin(ctx context.Context, req dto.SigninRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("signin rejected: bad credentials", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		logger.Warn("signin rejected: inactive user", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user, company)
}

func (s *authService) buildAuthResponse(user *domain.User, company *domain.Company) (*dto.AuthResponse, error) {
	token, err := utils.GenerateJWT(user.UserID, user.CompanyID, string(user.Role),
		s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &dto.AuthResponse{
		Token:   token,
		User:    dto.ToUserResponse(user),
		Company: dto.ToCompanyResponse(company),
	}, nil
}
