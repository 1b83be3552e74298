package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	CustomerID  string            `json:"customerID" binding:"required"`
	JobID       *string           `json:"jobID"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	DueDate     *time.Time        `json:"dueDate"`
	LineItems   []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate     decimal.Decimal   `json:"taxRate"`
	Notes       string            `json:"notes"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
// Line items, when present, replace the existing set wholesale.
type UpdateInvoiceRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	DueDate     *time.Time         `json:"dueDate"`
	LineItems   *[]LineItemRequest `json:"lineItems" binding:"omitempty,min=1,dive"`
	TaxRate     *decimal.Decimal   `json:"taxRate"`
	Notes       *string            `json:"notes"`
	Status      *string            `json:"status" binding:"omitempty,oneof=draft sent viewed paid partial overdue void"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	CustomerID    string               `json:"customerID"`
	EstimateID    *string              `json:"estimateID"`
	JobID         *string              `json:"jobID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Status        domain.InvoiceStatus `json:"status"`
	DueDate       *time.Time           `json:"dueDate"`
	PaidDate      *time.Time           `json:"paidDate"`
	LineItems     []LineItemResponse   `json:"lineItems"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxRate       decimal.Decimal      `json:"taxRate"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	BalanceDue    decimal.Decimal      `json:"balanceDue"`
	Notes         string               `json:"notes"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		CustomerID:    inv.CustomerID,
		EstimateID:    inv.EstimateID,
		JobID:         inv.JobID,
		InvoiceNumber: inv.InvoiceNumber,
		Title:         inv.Title,
		Description:   inv.Description,
		Status:        inv.Status,
		DueDate:       inv.DueDate,
		PaidDate:      inv.PaidDate,
		LineItems:     ToLineItemResponses(inv.LineItems),
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		Tax:           inv.Tax,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue(),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
	Status     string  `form:"status" binding:"omitempty,oneof=draft sent viewed paid partial overdue void"`
	CustomerID string  `form:"customerID"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListInvoicesResponse converts a page of domain.Invoice to the list DTO
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
