package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// CreateEstimateRequest defines the data needed to create an estimate.
type CreateEstimateRequest struct {
	CustomerID  string            `json:"customerID" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	ValidUntil  *time.Time        `json:"validUntil"`
	LineItems   []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate     decimal.Decimal   `json:"taxRate"`
	Notes       string            `json:"notes"`
}

// UpdateEstimateRequest defines the data allowed for updating an estimate.
// Line items, when present, replace the existing set wholesale.
type UpdateEstimateRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	ValidUntil  *time.Time         `json:"validUntil"`
	LineItems   *[]LineItemRequest `json:"lineItems" binding:"omitempty,min=1,dive"`
	TaxRate     *decimal.Decimal   `json:"taxRate"`
	Notes       *string            `json:"notes"`
	Status      *string            `json:"status" binding:"omitempty,oneof=draft sent viewed approved rejected expired"`
}

// EstimateResponse defines the data returned for an estimate.
type EstimateResponse struct {
	EstimateID     string                `json:"estimateID"`
	CustomerID     string                `json:"customerID"`
	EstimateNumber string                `json:"estimateNumber"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Status         domain.EstimateStatus `json:"status"`
	ValidUntil     *time.Time            `json:"validUntil"`
	LineItems      []LineItemResponse    `json:"lineItems"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxRate        decimal.Decimal       `json:"taxRate"`
	Tax            decimal.Decimal       `json:"tax"`
	Total          decimal.Decimal       `json:"total"`
	Notes          string                `json:"notes"`
	ApprovedAt     *time.Time            `json:"approvedAt"`
	RejectedAt     *time.Time            `json:"rejectedAt"`
	CreatedAt      time.Time             `json:"createdAt"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
}

// ToEstimateResponse converts a domain.Estimate to EstimateResponse DTO
func ToEstimateResponse(e *domain.Estimate) EstimateResponse {
	return EstimateResponse{
		EstimateID:     e.EstimateID,
		CustomerID:     e.CustomerID,
		EstimateNumber: e.EstimateNumber,
		Title:          e.Title,
		Description:    e.Description,
		Status:         e.Status,
		ValidUntil:     e.ValidUntil,
		LineItems:      ToLineItemResponses(e.LineItems),
		Subtotal:       e.Subtotal,
		TaxRate:        e.TaxRate,
		Tax:            e.Tax,
		Total:          e.Total,
		Notes:          e.Notes,
		ApprovedAt:     e.ApprovedAt,
		RejectedAt:     e.RejectedAt,
		CreatedAt:      e.CreatedAt,
		LastUpdatedAt:  e.LastUpdatedAt,
	}
}

// ListEstimatesParams defines query parameters for listing estimates.
type ListEstimatesParams struct {
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
	Status     string  `form:"status" binding:"omitempty,oneof=draft sent viewed approved rejected expired"`
	CustomerID string  `form:"customerID"`
}

// ListEstimatesResponse wraps a page of estimates.
type ListEstimatesResponse struct {
	Estimates []EstimateResponse `json:"estimates"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListEstimatesResponse converts a page of domain.Estimate to the list DTO
func ToListEstimatesResponse(estimates []domain.Estimate, nextToken *string) ListEstimatesResponse {
	res := make([]EstimateResponse, len(estimates))
	for i, e := range estimates {
		res[i] = ToEstimateResponse(&e)
	}
	return ListEstimatesResponse{Estimates: res, NextToken: nextToken}
}

// RespondToEstimateRequest is the portal customer's approval decision.
type RespondToEstimateRequest struct {
	Response string `json:"response" binding:"required,oneof=approved rejected"`
}
