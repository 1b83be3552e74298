package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	"github.com/tradehive/tradehive_backend/internal/utils/pagination"
)

type PgxEstimateRepository struct {
	BaseRepository
}

func newPgxEstimateRepository(db *pgxpool.Pool) portsrepo.EstimateRepositoryFacade {
	return &PgxEstimateRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.EstimateRepositoryFacade = (*PgxEstimateRepository)(nil)

const estimateColumns = `estimate_id, company_id, customer_id, estimate_number, title, description, status,
		valid_until, subtotal, tax_rate, tax, total, notes, approved_at, rejected_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanEstimate(row pgx.Row) (*domain.Estimate, error) {
	var e domain.Estimate
	err := row.Scan(
		&e.EstimateID, &e.CompanyID, &e.CustomerID, &e.EstimateNumber, &e.Title, &e.Description, &e.Status,
		&e.ValidUntil, &e.Subtotal, &e.TaxRate, &e.Tax, &e.Total, &e.Notes, &e.ApprovedAt, &e.RejectedAt,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxEstimateRepository) FindEstimateByID(ctx context.Context, companyID, estimateID string) (*domain.Estimate, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimates WHERE company_id = $1 AND estimate_id = $2;`, estimateColumns)
	estimate, err := scanEstimate(r.Pool.QueryRow(ctx, query, companyID, estimateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find estimate by ID %s: %w", estimateID, err)
	}

	items, err := loadLineItems(ctx, r.Pool, lineItemParentEstimate, []string{estimateID})
	if err != nil {
		return nil, err
	}
	estimate.LineItems = items[estimateID]
	return estimate, nil
}

func (r *PgxEstimateRepository) ListEstimates(ctx context.Context, companyID string, limit int, nextToken *string, status domain.EstimateStatus, customerID string) ([]domain.Estimate, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM estimates WHERE company_id = $1`, estimateColumns)
	args := []interface{}{companyID}
	argPos := 2

	if status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, status)
		argPos++
	}
	if customerID != "" {
		query += fmt.Sprintf(` AND customer_id = $%d`, argPos)
		args = append(args, customerID)
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += fmt.Sprintf(` AND created_at < $%d`, argPos)
		args = append(args, lastCreatedAt)
		argPos++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query estimates: %w", err)
	}
	defer rows.Close()

	estimates := []domain.Estimate{}
	for rows.Next() {
		estimate, err := scanEstimate(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan estimate row: %w", err)
		}
		estimates = append(estimates, *estimate)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating estimate rows: %w", rows.Err())
	}

	var nextTokenVal *string
	if len(estimates) > limit {
		estimates = estimates[:limit]
		token := pagination.EncodeDateBasedToken(estimates[len(estimates)-1].CreatedAt)
		nextTokenVal = &token
	}

	if err := r.attachLineItems(ctx, estimates); err != nil {
		return nil, nil, err
	}
	return estimates, nextTokenVal, nil
}

func (r *PgxEstimateRepository) ListEstimatesByCustomer(ctx context.Context, companyID, customerID string) ([]domain.Estimate, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM estimates
        WHERE company_id = $1 AND customer_id = $2 AND status <> $3
        ORDER BY created_at DESC;`, estimateColumns)

	rows, err := r.Pool.Query(ctx, query, companyID, customerID, domain.EstimateDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer estimates: %w", err)
	}
	defer rows.Close()

	estimates := []domain.Estimate{}
	for rows.Next() {
		estimate, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan estimate row: %w", err)
		}
		estimates = append(estimates, *estimate)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating estimate rows: %w", rows.Err())
	}

	if err := r.attachLineItems(ctx, estimates); err != nil {
		return nil, err
	}
	return estimates, nil
}

func (r *PgxEstimateRepository) attachLineItems(ctx context.Context, estimates []domain.Estimate) error {
	if len(estimates) == 0 {
		return nil
	}
	ids := make([]string, len(estimates))
	for i, e := range estimates {
		ids[i] = e.EstimateID
	}
	items, err := loadLineItems(ctx, r.Pool, lineItemParentEstimate, ids)
	if err != nil {
		return err
	}
	for i := range estimates {
		estimates[i].LineItems = items[estimates[i].EstimateID]
	}
	return nil
}

func (r *PgxEstimateRepository) SaveEstimate(ctx context.Context, estimate domain.Estimate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        INSERT INTO estimates (estimate_id, company_id, customer_id, estimate_number, title, description, status,
            valid_until, subtotal, tax_rate, tax, total, notes, approved_at, rejected_at,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err = tx.Exec(ctx, query,
		estimate.EstimateID, estimate.CompanyID, estimate.CustomerID, estimate.EstimateNumber,
		estimate.Title, estimate.Description, estimate.Status,
		estimate.ValidUntil, estimate.Subtotal, estimate.TaxRate, estimate.Tax, estimate.Total,
		estimate.Notes, estimate.ApprovedAt, estimate.RejectedAt,
		estimate.CreatedAt, estimate.CreatedBy, estimate.LastUpdatedAt, estimate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save estimate: %w", err)
	}

	if err := insertLineItems(ctx, tx, lineItemParentEstimate, estimate.EstimateID, estimate.LineItems); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxEstimateRepository) UpdateEstimate(ctx context.Context, estimate domain.Estimate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        UPDATE estimates
        SET title = $1, description = $2, status = $3, valid_until = $4,
            subtotal = $5, tax_rate = $6, tax = $7, total = $8, notes = $9,
            last_updated_at = $10, last_updated_by = $11
        WHERE company_id = $12 AND estimate_id = $13;
    `
	cmdTag, err := tx.Exec(ctx, query,
		estimate.Title, estimate.Description, estimate.Status, estimate.ValidUntil,
		estimate.Subtotal, estimate.TaxRate, estimate.Tax, estimate.Total, estimate.Notes,
		estimate.LastUpdatedAt, estimate.LastUpdatedBy, estimate.CompanyID, estimate.EstimateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update estimate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("estimate not found: %w", apperrors.ErrNotFound)
	}

	if err := deleteLineItems(ctx, tx, lineItemParentEstimate, estimate.EstimateID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, lineItemParentEstimate, estimate.EstimateID, estimate.LineItems); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxEstimateRepository) UpdateEstimateStatus(ctx context.Context, companyID, estimateID string, status domain.EstimateStatus, approvedAt, rejectedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE estimates
        SET status = $1,
            approved_at = COALESCE($2, approved_at),
            rejected_at = COALESCE($3, rejected_at),
            last_updated_at = $4, last_updated_by = $5
        WHERE company_id = $6 AND estimate_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, status, approvedAt, rejectedAt, updatedAt, updatedBy, companyID, estimateID)
	if err != nil {
		return fmt.Errorf("failed to update estimate status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("estimate not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEstimateRepository) DeleteEstimate(ctx context.Context, companyID, estimateID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := deleteLineItems(ctx, tx, lineItemParentEstimate, estimateID); err != nil {
		return err
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM estimates WHERE company_id = $1 AND estimate_id = $2;`, companyID, estimateID)
	if err != nil {
		return fmt.Errorf("failed to delete estimate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("estimate not found: %w", apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}

// MarkExpiredEstimates moves open estimates past their validity window
// into expired, matching what the lifecycle state machine would allow.
func (r *PgxEstimateRepository) MarkExpiredEstimates(ctx context.Context, companyID string, now time.Time) (int64, error) {
	query := `
        UPDATE estimates
        SET status = $1, last_updated_at = $2
        WHERE company_id = $3 AND valid_until IS NOT NULL AND valid_until < $2
          AND status IN ($4, $5);
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		domain.EstimateExpired, now, companyID, domain.EstimateSent, domain.EstimateViewed)
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired estimates: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
