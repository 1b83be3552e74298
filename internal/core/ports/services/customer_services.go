package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer.
	GetCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, companyID string, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer.
	CreateCustomer(ctx context.Context, companyID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// UpdateCustomer updates a customer's details.
	UpdateCustomer(ctx context.Context, companyID, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)

	// DeleteCustomer removes a customer.
	DeleteCustomer(ctx context.Context, companyID, customerID string, requestingUserID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}

// LeadReaderSvc defines read operations for lead data
type LeadReaderSvc interface {
	// GetLeadByID retrieves a specific lead.
	GetLeadByID(ctx context.Context, companyID, leadID string) (*domain.Lead, error)

	// ListLeads retrieves a paginated list of leads.
	ListLeads(ctx context.Context, companyID string, params dto.ListLeadsParams) (*dto.ListLeadsResponse, error)
}

// LeadWriterSvc defines write operations for lead data
type LeadWriterSvc interface {
	// CreateLead persists a new lead.
	CreateLead(ctx context.Context, companyID string, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error)

	// UpdateLead updates a lead's details.
	UpdateLead(ctx context.Context, companyID, leadID string, req dto.UpdateLeadRequest, requestingUserID string) (*domain.Lead, error)

	// DeleteLead removes a lead.
	DeleteLead(ctx context.Context, companyID, leadID string, requestingUserID string) error

	// ConvertLead creates a customer from the lead and marks it won.
	// Converting an already converted lead returns a conflict.
	ConvertLead(ctx context.Context, companyID, leadID string, requestingUserID string) (*domain.Lead, *domain.Customer, error)
}

// LeadSvcFacade combines all lead-related service interfaces
type LeadSvcFacade interface {
	LeadReaderSvc
	LeadWriterSvc
}
