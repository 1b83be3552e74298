package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) GetCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, companyID string, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	customers, nextToken, err := s.customerRepo.ListCustomers(ctx, companyID, limit, params.NextToken, params.Search, params.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	res := dto.ToListCustomersResponse(customers, nextToken)
	return &res, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, companyID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		CompanyID:  companyID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Zip:        req.Zip,
		Notes:      req.Notes,
		Tags:       req.Tags,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, companyID, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.Zip != nil {
		customer.Zip = *req.Zip
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.Tags != nil {
		customer.Tags = *req.Tags
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, companyID, customerID string, requestingUserID string) error {
	if err := s.customerRepo.DeleteCustomer(ctx, companyID, customerID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
