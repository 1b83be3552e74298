package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// RecurringInvoiceReaderSvc defines read operations for schedules
type RecurringInvoiceReaderSvc interface {
	// GetRecurringInvoiceByID retrieves a specific schedule.
	GetRecurringInvoiceByID(ctx context.Context, companyID, recurringInvoiceID string) (*domain.RecurringInvoice, error)

	// ListRecurringInvoices retrieves all schedules for the company.
	ListRecurringInvoices(ctx context.Context, companyID string) ([]domain.RecurringInvoice, error)
}

// RecurringInvoiceWriterSvc defines write operations for schedules
type RecurringInvoiceWriterSvc interface {
	// CreateRecurringInvoice persists a new schedule.
	CreateRecurringInvoice(ctx context.Context, companyID string, req dto.CreateRecurringInvoiceRequest, creatorUserID string) (*domain.RecurringInvoice, error)

	// UpdateRecurringInvoice updates a schedule.
	UpdateRecurringInvoice(ctx context.Context, companyID, recurringInvoiceID string, req dto.UpdateRecurringInvoiceRequest, requestingUserID string) (*domain.RecurringInvoice, error)

	// DeleteRecurringInvoice removes a schedule.
	DeleteRecurringInvoice(ctx context.Context, companyID, recurringInvoiceID string, requestingUserID string) error
}

// RecurringInvoiceRunnerSvc generates invoices from due schedules. The
// endpoint is driven by an external scheduler.
type RecurringInvoiceRunnerSvc interface {
	// RunDueSchedules generates a draft invoice for every due schedule and
	// advances each schedule's next run date.
	RunDueSchedules(ctx context.Context, companyID string, requestingUserID string) ([]domain.Invoice, error)
}

// RecurringInvoiceSvcFacade combines all schedule-related service interfaces
type RecurringInvoiceSvcFacade interface {
	RecurringInvoiceReaderSvc
	RecurringInvoiceWriterSvc
	RecurringInvoiceRunnerSvc
}
