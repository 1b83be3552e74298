package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	"github.com/tradehive/tradehive_backend/internal/utils/pagination"
)

type PgxJobRepository struct {
	BaseRepository
}

func newPgxJobRepository(db *pgxpool.Pool) portsrepo.JobRepositoryFacade {
	return &PgxJobRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.JobRepositoryFacade = (*PgxJobRepository)(nil)

const jobColumns = `job_id, company_id, customer_id, title, description, status,
		scheduled_at, completed_at, address, city, state, zip, notes, assigned_to_user_id,
		created_at, created_by, last_updated_at, last_updated_by`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.JobID, &j.CompanyID, &j.CustomerID, &j.Title, &j.Description, &j.Status,
		&j.ScheduledAt, &j.CompletedAt, &j.Address, &j.City, &j.State, &j.Zip,
		&j.Notes, &j.AssignedToUserID,
		&j.CreatedAt, &j.CreatedBy, &j.LastUpdatedAt, &j.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *PgxJobRepository) FindJobByID(ctx context.Context, companyID, jobID string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE company_id = $1 AND job_id = $2;`, jobColumns)
	job, err := scanJob(r.Pool.QueryRow(ctx, query, companyID, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job by ID %s: %w", jobID, err)
	}
	return job, nil
}

func (r *PgxJobRepository) ListJobs(ctx context.Context, companyID string, limit int, nextToken *string, status domain.JobStatus, customerID, assignedTo string) ([]domain.Job, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE company_id = $1`, jobColumns)
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
	if assignedTo != "" {
		query += fmt.Sprintf(` AND assigned_to_user_id = $%d`, argPos)
		args = append(args, assignedTo)
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
		return nil, nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating job rows: %w", rows.Err())
	}

	var nextTokenVal *string
	if len(jobs) > limit {
		jobs = jobs[:limit]
		token := pagination.EncodeDateBasedToken(jobs[len(jobs)-1].CreatedAt)
		nextTokenVal = &token
	}
	return jobs, nextTokenVal, nil
}

func (r *PgxJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	query := `
        INSERT INTO jobs (job_id, company_id, customer_id, title, description, status,
            scheduled_at, completed_at, address, city, state, zip, notes, assigned_to_user_id,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.Pool.Exec(ctx, query,
		job.JobID, job.CompanyID, job.CustomerID, job.Title, job.Description, job.Status,
		job.ScheduledAt, job.CompletedAt, job.Address, job.City, job.State, job.Zip,
		job.Notes, job.AssignedToUserID,
		job.CreatedAt, job.CreatedBy, job.LastUpdatedAt, job.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (r *PgxJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	query := `
        UPDATE jobs
        SET title = $1, description = $2, status = $3, scheduled_at = $4, completed_at = $5,
            address = $6, city = $7, state = $8, zip = $9, notes = $10, assigned_to_user_id = $11,
            last_updated_at = $12, last_updated_by = $13
        WHERE company_id = $14 AND job_id = $15;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		job.Title, job.Description, job.Status, job.ScheduledAt, job.CompletedAt,
		job.Address, job.City, job.State, job.Zip, job.Notes, job.AssignedToUserID,
		job.LastUpdatedAt, job.LastUpdatedBy, job.CompanyID, job.JobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxJobRepository) DeleteJob(ctx context.Context, companyID, jobID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM jobs WHERE company_id = $1 AND job_id = $2;`, companyID, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
