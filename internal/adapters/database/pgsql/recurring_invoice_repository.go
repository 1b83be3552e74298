package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
)

type PgxRecurringInvoiceRepository struct {
	BaseRepository
}

func newPgxRecurringInvoiceRepository(db *pgxpool.Pool) portsrepo.RecurringInvoiceRepositoryFacade {
	return &PgxRecurringInvoiceRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.RecurringInvoiceRepositoryFacade = (*PgxRecurringInvoiceRepository)(nil)

const recurringColumns = `recurring_invoice_id, company_id, customer_id, frequency, next_run_date, end_date,
		is_active, template, last_run_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanRecurringInvoice(row pgx.Row) (*domain.RecurringInvoice, error) {
	var r domain.RecurringInvoice
	var templateJSON []byte
	err := row.Scan(
		&r.RecurringInvoiceID, &r.CompanyID, &r.CustomerID, &r.Frequency, &r.NextRunDate, &r.EndDate,
		&r.IsActive, &templateJSON, &r.LastRunAt,
		&r.CreatedAt, &r.CreatedBy, &r.LastUpdatedAt, &r.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(templateJSON, &r.Template); err != nil {
		return nil, fmt.Errorf("failed to decode invoice template: %w", err)
	}
	return &r, nil
}

func (r *PgxRecurringInvoiceRepository) FindRecurringInvoiceByID(ctx context.Context, companyID, recurringInvoiceID string) (*domain.RecurringInvoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM recurring_invoices WHERE company_id = $1 AND recurring_invoice_id = $2;`, recurringColumns)
	schedule, err := scanRecurringInvoice(r.Pool.QueryRow(ctx, query, companyID, recurringInvoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring invoice by ID %s: %w", recurringInvoiceID, err)
	}
	return schedule, nil
}

func (r *PgxRecurringInvoiceRepository) ListRecurringInvoices(ctx context.Context, companyID string) ([]domain.RecurringInvoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM recurring_invoices WHERE company_id = $1 ORDER BY created_at DESC;`, recurringColumns)
	return r.queryRecurring(ctx, query, companyID)
}

func (r *PgxRecurringInvoiceRepository) ListDueRecurringInvoices(ctx context.Context, companyID string, now time.Time) ([]domain.RecurringInvoice, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM recurring_invoices
        WHERE company_id = $1 AND is_active = TRUE AND next_run_date <= $2
          AND (end_date IS NULL OR end_date >= $2)
        ORDER BY next_run_date ASC;`, recurringColumns)
	return r.queryRecurring(ctx, query, companyID, now)
}

func (r *PgxRecurringInvoiceRepository) queryRecurring(ctx context.Context, query string, args ...interface{}) ([]domain.RecurringInvoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring invoices: %w", err)
	}
	defer rows.Close()

	schedules := []domain.RecurringInvoice{}
	for rows.Next() {
		schedule, err := scanRecurringInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring invoice row: %w", err)
		}
		schedules = append(schedules, *schedule)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating recurring invoice rows: %w", rows.Err())
	}
	return schedules, nil
}

func (r *PgxRecurringInvoiceRepository) SaveRecurringInvoice(ctx context.Context, schedule domain.RecurringInvoice) error {
	templateJSON, err := json.Marshal(schedule.Template)
	if err != nil {
		return fmt.Errorf("failed to encode invoice template: %w", err)
	}
	query := `
        INSERT INTO recurring_invoices (recurring_invoice_id, company_id, customer_id, frequency, next_run_date,
            end_date, is_active, template, last_run_at,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err = r.Pool.Exec(ctx, query,
		schedule.RecurringInvoiceID, schedule.CompanyID, schedule.CustomerID, schedule.Frequency,
		schedule.NextRunDate, schedule.EndDate, schedule.IsActive, templateJSON, schedule.LastRunAt,
		schedule.CreatedAt, schedule.CreatedBy, schedule.LastUpdatedAt, schedule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurring invoice: %w", err)
	}
	return nil
}

func (r *PgxRecurringInvoiceRepository) UpdateRecurringInvoice(ctx context.Context, schedule domain.RecurringInvoice) error {
	templateJSON, err := json.Marshal(schedule.Template)
	if err != nil {
		return fmt.Errorf("failed to encode invoice template: %w", err)
	}
	query := `
        UPDATE recurring_invoices
        SET frequency = $1, next_run_date = $2, end_date = $3, is_active = $4, template = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE company_id = $8 AND recurring_invoice_id = $9;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		schedule.Frequency, schedule.NextRunDate, schedule.EndDate, schedule.IsActive, templateJSON,
		schedule.LastUpdatedAt, schedule.LastUpdatedBy, schedule.CompanyID, schedule.RecurringInvoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("recurring invoice not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRecurringInvoiceRepository) DeleteRecurringInvoice(ctx context.Context, companyID, recurringInvoiceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_invoices WHERE company_id = $1 AND recurring_invoice_id = $2;`, companyID, recurringInvoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("recurring invoice not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRecurringInvoiceRepository) AdvanceSchedule(ctx context.Context, companyID, recurringInvoiceID string, nextRunDate, lastRunAt time.Time) error {
	query := `
        UPDATE recurring_invoices
        SET next_run_date = $1, last_run_at = $2, last_updated_at = $2
        WHERE company_id = $3 AND recurring_invoice_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, nextRunDate, lastRunAt, companyID, recurringInvoiceID)
	if err != nil {
		return fmt.Errorf("failed to advance recurring invoice schedule: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("recurring invoice not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
