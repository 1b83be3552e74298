package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

type leadService struct {
	leadRepo portsrepo.LeadRepositoryFacade
}

// NewLeadService creates a new LeadService.
func NewLeadService(leadRepo portsrepo.LeadRepositoryFacade) portssvc.LeadSvcFacade {
	return &leadService{leadRepo: leadRepo}
}

var _ portssvc.LeadSvcFacade = (*leadService)(nil)

func (s *leadService) GetLeadByID(ctx context.Context, companyID, leadID string) (*domain.Lead, error) {
	return s.leadRepo.FindLeadByID(ctx, companyID, leadID)
}

func (s *leadService) ListLeads(ctx context.Context, companyID string, params dto.ListLeadsParams) (*dto.ListLeadsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	leads, nextToken, err := s.leadRepo.ListLeads(ctx, companyID, limit, params.NextToken, domain.LeadStatus(params.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	res := dto.ToListLeadsResponse(leads, nextToken)
	return &res, nil
}

func (s *leadService) CreateLead(ctx context.Context, companyID string, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error) {
	now := time.Now().UTC()
	lead := domain.Lead{
		LeadID:    uuid.NewString(),
		CompanyID: companyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Source:    req.Source,
		Status:    domain.LeadNew,
		Notes:     req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.leadRepo.SaveLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}
	return &lead, nil
}

func (s *leadService) UpdateLead(ctx context.Context, companyID, leadID string, req dto.UpdateLeadRequest, requestingUserID string) (*domain.Lead, error) {
	lead, err := s.leadRepo.FindLeadByID(ctx, companyID, leadID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		lead.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		lead.LastName = *req.LastName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		if !domain.ValidLeadStatus(status) {
			return nil, fmt.Errorf("unknown lead status %q: %w", *req.Status, apperrors.ErrValidation)
		}
		lead.Status = status
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	lead.LastUpdatedAt = time.Now().UTC()
	lead.LastUpdatedBy = requestingUserID

	if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return lead, nil
}

func (s *leadService) DeleteLead(ctx context.Context, companyID, leadID string, requestingUserID string) error {
	if err := s.leadRepo.DeleteLead(ctx, companyID, leadID); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

func (s *leadService) ConvertLead(ctx context.Context, companyID, leadID string, requestingUserID string) (*domain.Lead, *domain.Customer, error) {
	lead, err := s.leadRepo.FindLeadByID(ctx, companyID, leadID)
	if err != nil {
		return nil, nil, err
	}
	if lead.CustomerID != nil {
		return nil, nil, fmt.Errorf("lead already converted: %w", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		CompanyID:  companyID,
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Notes:      lead.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	lead.Status = domain.LeadWon
	lead.CustomerID = &customer.CustomerID
	lead.LastUpdatedAt = now
	lead.LastUpdatedBy = requestingUserID

	if err := s.leadRepo.ConvertLead(ctx, *lead, customer); err != nil {
		return nil, nil, fmt.Errorf("failed to convert lead: %w", err)
	}
	return lead, &customer, nil
}
