package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// InvoiceTemplateRequest is the invoice body a recurring schedule will
// stamp on each run.
type InvoiceTemplateRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	LineItems   []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate     decimal.Decimal   `json:"taxRate"`
	Notes       string            `json:"notes"`
	DueInDays   int               `json:"dueInDays" binding:"omitempty,min=0"`
}

// CreateRecurringInvoiceRequest defines the data needed to create a
// recurring invoice schedule.
type CreateRecurringInvoiceRequest struct {
	CustomerID  string                 `json:"customerID" binding:"required"`
	Frequency   string                 `json:"frequency" binding:"required,oneof=weekly monthly quarterly yearly"`
	NextRunDate time.Time              `json:"nextRunDate" binding:"required"`
	EndDate     *time.Time             `json:"endDate"`
	Template    InvoiceTemplateRequest `json:"template" binding:"required"`
}

// UpdateRecurringInvoiceRequest defines the data allowed for updating a
// schedule.
type UpdateRecurringInvoiceRequest struct {
	Frequency   *string                 `json:"frequency" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
	NextRunDate *time.Time              `json:"nextRunDate"`
	EndDate     *time.Time              `json:"endDate"`
	IsActive    *bool                   `json:"isActive"`
	Template    *InvoiceTemplateRequest `json:"template"`
}

// RecurringInvoiceResponse defines the data returned for a schedule.
type RecurringInvoiceResponse struct {
	RecurringInvoiceID string                    `json:"recurringInvoiceID"`
	CustomerID         string                    `json:"customerID"`
	Frequency          domain.RecurringFrequency `json:"frequency"`
	NextRunDate        time.Time                 `json:"nextRunDate"`
	EndDate            *time.Time                `json:"endDate"`
	IsActive           bool                      `json:"isActive"`
	Template           domain.InvoiceTemplate    `json:"template"`
	LastRunAt          *time.Time                `json:"lastRunAt"`
	CreatedAt          time.Time                 `json:"createdAt"`
	LastUpdatedAt      time.Time                 `json:"lastUpdatedAt"`
}

// ToRecurringInvoiceResponse converts a domain.RecurringInvoice to its DTO
func ToRecurringInvoiceResponse(r *domain.RecurringInvoice) RecurringInvoiceResponse {
	return RecurringInvoiceResponse{
		RecurringInvoiceID: r.RecurringInvoiceID,
		CustomerID:         r.CustomerID,
		Frequency:          r.Frequency,
		NextRunDate:        r.NextRunDate,
		EndDate:            r.EndDate,
		IsActive:           r.IsActive,
		Template:           r.Template,
		LastRunAt:          r.LastRunAt,
		CreatedAt:          r.CreatedAt,
		LastUpdatedAt:      r.LastUpdatedAt,
	}
}

// ToListRecurringInvoicesResponse converts a slice of schedules.
func ToListRecurringInvoicesResponse(schedules []domain.RecurringInvoice) []RecurringInvoiceResponse {
	res := make([]RecurringInvoiceResponse, len(schedules))
	for i, r := range schedules {
		res[i] = ToRecurringInvoiceResponse(&r)
	}
	return res
}

// RunRecurringInvoicesResponse summarizes a generation sweep.
type RunRecurringInvoicesResponse struct {
	Generated []InvoiceResponse `json:"generated"`
	Count     int               `json:"count"`
}

// ToInvoiceTemplateDomain converts a template request to its domain form.
func ToInvoiceTemplateDomain(req InvoiceTemplateRequest) domain.InvoiceTemplate {
	return domain.InvoiceTemplate{
		Title:       req.Title,
		Description: req.Description,
		LineItems:   ToLineItemsDomain(req.LineItems),
		TaxRate:     req.TaxRate,
		Notes:       req.Notes,
		DueInDays:   req.DueInDays,
	}
}
