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
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, email, phone, address, city, state, zip, logo_url, tax_id, timezone,
		stripe_account_id, stripe_pricing_model, google_email, google_refresh_token,
		created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.Zip,
		&c.LogoURL, &c.TaxID, &c.Timezone,
		&c.StripeAccountID, &c.StripePricingModel, &c.GoogleEmail, &c.GoogleRefreshToken,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE company_id = $1;`, companyColumns)
	company, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	return company, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
        INSERT INTO companies (company_id, name, email, phone, address, city, state, zip, logo_url, tax_id, timezone,
            stripe_account_id, stripe_pricing_model, google_email, google_refresh_token,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID, company.Name, company.Email, company.Phone,
		company.Address, company.City, company.State, company.Zip,
		company.LogoURL, company.TaxID, company.Timezone,
		company.StripeAccountID, company.StripePricingModel, company.GoogleEmail, company.GoogleRefreshToken,
		company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
        UPDATE companies
        SET name = $1, email = $2, phone = $3, address = $4, city = $5, state = $6, zip = $7,
            logo_url = $8, tax_id = $9, timezone = $10,
            stripe_account_id = $11, stripe_pricing_model = $12, google_email = $13, google_refresh_token = $14,
            last_updated_at = $15, last_updated_by = $16
        WHERE company_id = $17;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		company.Name, company.Email, company.Phone,
		company.Address, company.City, company.State, company.Zip,
		company.LogoURL, company.TaxID, company.Timezone,
		company.StripeAccountID, company.StripePricingModel, company.GoogleEmail, company.GoogleRefreshToken,
		company.LastUpdatedAt, company.LastUpdatedBy, company.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// NextEstimateNumber atomically reserves the next estimate sequence value
// for the company. UPDATE ... RETURNING keeps two concurrent creates from
// ever seeing the same number.
func (r *PgxCompanyRepository) NextEstimateNumber(ctx context.Context, companyID string) (string, error) {
	return r.nextDocumentNumber(ctx, companyID, "next_estimate_seq", "EST")
}

// NextInvoiceNumber atomically reserves the next invoice sequence value.
func (r *PgxCompanyRepository) NextInvoiceNumber(ctx context.Context, companyID string) (string, error) {
	return r.nextDocumentNumber(ctx, companyID, "next_invoice_seq", "INV")
}

func (r *PgxCompanyRepository) nextDocumentNumber(ctx context.Context, companyID, column, prefix string) (string, error) {
	// column is one of two fixed identifiers, never user input.
	query := fmt.Sprintf(`
        UPDATE companies
        SET %s = %s + 1
        WHERE company_id = $1
        RETURNING %s - 1;
    `, column, column, column)

	var seq int64
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to allocate document number: %w", err)
	}
	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}
