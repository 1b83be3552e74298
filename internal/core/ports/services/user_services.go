package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// UserReaderSvc defines read operations for team members
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user within the company.
	GetUserByID(ctx context.Context, companyID, userID string) (*domain.User, error)

	// ListUsers retrieves all team members of the company.
	ListUsers(ctx context.Context, companyID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for team members
type UserWriterSvc interface {
	// CreateUser adds a team member. Admin only.
	CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates a team member's details. Admin only, except a
	// user may update their own name.
	UpdateUser(ctx context.Context, companyID, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
