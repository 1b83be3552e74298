package repositories

import (
	"context"
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer within a company.
	FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error)

	// FindCustomerByEmail retrieves a customer by email across companies.
	// Used by the portal login flow, where only the email is known.
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// FindCustomerByPortalToken retrieves the customer holding an unexpired
	// magic-link token.
	FindCustomerByPortalToken(ctx context.Context, token string, now time.Time) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers for a company
	// using token-based pagination, optionally filtered by a name/email
	// search term or a tag.
	ListCustomers(ctx context.Context, companyID string, limit int, nextToken *string, search, tag string) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer from a company.
	DeleteCustomer(ctx context.Context, companyID, customerID string) error
}

// PortalTokenWriter manages the customer's magic-link token lifecycle.
type PortalTokenWriter interface {
	// SetPortalToken stores a fresh magic-link token and its expiry.
	SetPortalToken(ctx context.Context, companyID, customerID, token string, expiresAt time.Time) error

	// ClearPortalToken removes the token once it has been redeemed, making
	// the link single use.
	ClearPortalToken(ctx context.Context, companyID, customerID string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	PortalTokenWriter
}

// LeadReader defines read operations for lead data
type LeadReader interface {
	// FindLeadByID retrieves a specific lead within a company.
	FindLeadByID(ctx context.Context, companyID, leadID string) (*domain.Lead, error)

	// ListLeads retrieves a paginated list of leads for a company,
	// optionally filtered by status.
	ListLeads(ctx context.Context, companyID string, limit int, nextToken *string, status domain.LeadStatus) ([]domain.Lead, *string, error)
}

// LeadWriter defines write operations for lead data
type LeadWriter interface {
	// SaveLead persists a new lead.
	SaveLead(ctx context.Context, lead domain.Lead) error

	// UpdateLead updates an existing lead's details.
	UpdateLead(ctx context.Context, lead domain.Lead) error

	// DeleteLead removes a lead from a company.
	DeleteLead(ctx context.Context, companyID, leadID string) error

	// ConvertLead creates the customer and marks the lead won with a link
	// to it, in a single database transaction.
	ConvertLead(ctx context.Context, lead domain.Lead, customer domain.Customer) error
}

// LeadRepositoryFacade combines all lead-related repository interfaces
type LeadRepositoryFacade interface {
	LeadReader
	LeadWriter
}
