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

type PgxLeadRepository struct {
	BaseRepository
}

func newPgxLeadRepository(db *pgxpool.Pool) portsrepo.LeadRepositoryFacade {
	return &PgxLeadRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.LeadRepositoryFacade = (*PgxLeadRepository)(nil)

const leadColumns = `lead_id, company_id, first_name, last_name, email, phone, source, status, notes, customer_id,
		created_at, created_by, last_updated_at, last_updated_by`

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.LeadID, &l.CompanyID, &l.FirstName, &l.LastName, &l.Email, &l.Phone,
		&l.Source, &l.Status, &l.Notes, &l.CustomerID,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgxLeadRepository) FindLeadByID(ctx context.Context, companyID, leadID string) (*domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE company_id = $1 AND lead_id = $2;`, leadColumns)
	lead, err := scanLead(r.Pool.QueryRow(ctx, query, companyID, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lead by ID %s: %w", leadID, err)
	}
	return lead, nil
}

func (r *PgxLeadRepository) ListLeads(ctx context.Context, companyID string, limit int, nextToken *string, status domain.LeadStatus) ([]domain.Lead, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM leads WHERE company_id = $1`, leadColumns)
	args := []interface{}{companyID}
	argPos := 2

	if status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, status)
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
		return nil, nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, *lead)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating lead rows: %w", rows.Err())
	}

	var nextTokenVal *string
	if len(leads) > limit {
		leads = leads[:limit]
		token := pagination.EncodeDateBasedToken(leads[len(leads)-1].CreatedAt)
		nextTokenVal = &token
	}
	return leads, nextTokenVal, nil
}

func (r *PgxLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	query := `
        INSERT INTO leads (lead_id, company_id, first_name, last_name, email, phone, source, status, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		lead.LeadID, lead.CompanyID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Source, lead.Status, lead.Notes,
		lead.CreatedAt, lead.CreatedBy, lead.LastUpdatedAt, lead.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

func (r *PgxLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	query := `
        UPDATE leads
        SET first_name = $1, last_name = $2, email = $3, phone = $4, source = $5, status = $6, notes = $7,
            last_updated_at = $8, last_updated_by = $9
        WHERE company_id = $10 AND lead_id = $11;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		lead.FirstName, lead.LastName, lead.Email, lead.Phone, lead.Source, lead.Status, lead.Notes,
		lead.LastUpdatedAt, lead.LastUpdatedBy, lead.CompanyID, lead.LeadID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("lead not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLeadRepository) DeleteLead(ctx context.Context, companyID, leadID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM leads WHERE company_id = $1 AND lead_id = $2;`, companyID, leadID)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("lead not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// ConvertLead inserts the new customer and marks the lead won inside one
// transaction. A lead that is already linked to a customer is left
// untouched and reported as a conflict.
func (r *PgxLeadRepository) ConvertLead(ctx context.Context, lead domain.Lead, customer domain.Customer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertCustomer := `
        INSERT INTO customers (customer_id, company_id, first_name, last_name, email, phone,
            address, city, state, zip, notes, tags,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err = tx.Exec(ctx, insertCustomer,
		customer.CustomerID, customer.CompanyID, customer.FirstName, customer.LastName,
		customer.Email, customer.Phone, customer.Address, customer.City, customer.State, customer.Zip,
		customer.Notes, customer.Tags,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer for lead conversion: %w", err)
	}

	updateLead := `
        UPDATE leads
        SET status = $1, customer_id = $2, last_updated_at = $3, last_updated_by = $4
        WHERE company_id = $5 AND lead_id = $6 AND customer_id IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, updateLead,
		domain.LeadWon, customer.CustomerID,
		lead.LastUpdatedAt, lead.LastUpdatedBy, lead.CompanyID, lead.LeadID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark lead converted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("lead already converted: %w", apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}
