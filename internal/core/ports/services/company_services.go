package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// CompanyReaderSvc defines read operations for company settings
type CompanyReaderSvc interface {
	// GetCompany retrieves the requesting user's company.
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for company settings
type CompanyWriterSvc interface {
	// UpdateCompany updates company settings. Admin only.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error)
}

// GoogleIntegrationSvc manages the company's Google account link used for
// sending email through Gmail.
type GoogleIntegrationSvc interface {
	// GoogleAuthURL builds the OAuth consent URL for the company.
	GoogleAuthURL(ctx context.Context, companyID string) (string, error)

	// CompleteGoogleAuth exchanges the OAuth code and stores the refresh
	// token on the company.
	CompleteGoogleAuth(ctx context.Context, companyID, code string, requestingUserID string) (*domain.Company, error)

	// DisconnectGoogle clears the stored Google credentials.
	DisconnectGoogle(ctx context.Context, companyID string, requestingUserID string) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	GoogleIntegrationSvc
}
