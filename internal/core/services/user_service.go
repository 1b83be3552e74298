package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/utils"
)

// userService manages a company's team members.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// requireAdmin verifies the requesting user is an active admin of the company.
func (s *userService) requireAdmin(ctx context.Context, companyID, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleAdmin || !user.IsActive {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, companyID, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, companyID, userID)
}

func (s *userService) ListUsers(ctx context.Context, companyID string) ([]domain.User, error) {
	return s.userRepo.ListUsersByCompany(ctx, companyID)
}

func (s *userService) CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if err := s.requireAdmin(ctx, companyID, creatorUserID); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Role:         domain.UserRole(req.Role),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, companyID, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	// Non-admins may only rename themselves.
	if requestingUserID != userID || req.Role != nil || req.IsActive != nil {
		if err := s.requireAdmin(ctx, companyID, requestingUserID); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}
