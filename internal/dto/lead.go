package dto

import (
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// CreateLeadRequest defines the data needed to create a lead.
type CreateLeadRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Notes     string `json:"notes"`
}

// UpdateLeadRequest defines the data allowed for updating a lead.
type UpdateLeadRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Source    *string `json:"source"`
	Status    *string `json:"status" binding:"omitempty,oneof=new contacted qualified won lost"`
	Notes     *string `json:"notes"`
}

// LeadResponse defines the data returned for a lead.
type LeadResponse struct {
	LeadID        string            `json:"leadID"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Source        string            `json:"source"`
	Status        domain.LeadStatus `json:"status"`
	Notes         string            `json:"notes"`
	CustomerID    *string           `json:"customerID"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ToLeadResponse converts a domain.Lead to LeadResponse DTO
func ToLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		LeadID:        l.LeadID,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		Email:         l.Email,
		Phone:         l.Phone,
		Source:        l.Source,
		Status:        l.Status,
		Notes:         l.Notes,
		CustomerID:    l.CustomerID,
		CreatedAt:     l.CreatedAt,
		LastUpdatedAt: l.LastUpdatedAt,
	}
}

// ConvertLeadResponse is returned when a lead is converted to a customer.
type ConvertLeadResponse struct {
	Lead     LeadResponse     `json:"lead"`
	Customer CustomerResponse `json:"customer"`
}

// ListLeadsParams defines query parameters for listing leads.
type ListLeadsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status" binding:"omitempty,oneof=new contacted qualified won lost"`
}

// ListLeadsResponse wraps a page of leads.
type ListLeadsResponse struct {
	Leads     []LeadResponse `json:"leads"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToListLeadsResponse converts a page of domain.Lead to the list DTO
func ToListLeadsResponse(leads []domain.Lead, nextToken *string) ListLeadsResponse {
	res := make([]LeadResponse, len(leads))
	for i, l := range leads {
		res[i] = ToLeadResponse(&l)
	}
	return ListLeadsResponse{Leads: res, NextToken: nextToken}
}
