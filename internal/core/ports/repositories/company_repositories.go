package repositories

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates an existing company's details.
	UpdateCompany(ctx context.Context, company domain.Company) error
}

// DocumentNumberAllocator hands out company-scoped document numbers.
// Allocation must be atomic so two concurrent creates never receive the
// same sequence value.
type DocumentNumberAllocator interface {
	// NextEstimateNumber reserves and returns the next estimate number
	// for the company, formatted as EST-000001.
	NextEstimateNumber(ctx context.Context, companyID string) (string, error)

	// NextInvoiceNumber reserves and returns the next invoice number for
	// the company, formatted as INV-000001.
	NextInvoiceNumber(ctx context.Context, companyID string) (string, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
	DocumentNumberAllocator
}
