package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/dto"
)

// AuthSvc handles staff registration and login.
type AuthSvc interface {
	// Signup creates a company and its first admin user, returning a
	// session token.
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)

	// Signin verifies credentials and returns a session token.
	Signin(ctx context.Context, req dto.SigninRequest) (*dto.AuthResponse, error)
}
