package repositories

import (
	"context"
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// RecurringInvoiceReader defines read operations for recurring schedules
type RecurringInvoiceReader interface {
	// FindRecurringInvoiceByID retrieves a specific schedule within a company.
	FindRecurringInvoiceByID(ctx context.Context, companyID, recurringInvoiceID string) (*domain.RecurringInvoice, error)

	// ListRecurringInvoices retrieves all schedules for a company.
	ListRecurringInvoices(ctx context.Context, companyID string) ([]domain.RecurringInvoice, error)

	// ListDueRecurringInvoices retrieves every active schedule whose next
	// run date has passed, across the company.
	ListDueRecurringInvoices(ctx context.Context, companyID string, now time.Time) ([]domain.RecurringInvoice, error)
}

// RecurringInvoiceWriter defines write operations for recurring schedules
type RecurringInvoiceWriter interface {
	// SaveRecurringInvoice persists a new schedule.
	SaveRecurringInvoice(ctx context.Context, schedule domain.RecurringInvoice) error

	// UpdateRecurringInvoice updates an existing schedule.
	UpdateRecurringInvoice(ctx context.Context, schedule domain.RecurringInvoice) error

	// DeleteRecurringInvoice removes a schedule from a company.
	DeleteRecurringInvoice(ctx context.Context, companyID, recurringInvoiceID string) error

	// AdvanceSchedule records a completed run: bumps nextRunDate and sets
	// lastRunAt.
	AdvanceSchedule(ctx context.Context, companyID, recurringInvoiceID string, nextRunDate, lastRunAt time.Time) error
}

// RecurringInvoiceRepositoryFacade combines all schedule-related repository interfaces
type RecurringInvoiceRepositoryFacade interface {
	RecurringInvoiceReader
	RecurringInvoiceWriter
}
