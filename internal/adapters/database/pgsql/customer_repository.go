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

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, company_id, first_name, last_name, email, phone,
		address, city, state, zip, notes, tags, portal_token, portal_token_expires,
		created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.CustomerID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.Zip, &c.Notes, &c.Tags,
		&c.PortalToken, &c.PortalTokenExpires,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE company_id = $1 AND customer_id = $2;`, customerColumns)
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, companyID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return customer, nil
}

func (r *PgxCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	// Newest match wins if the same address exists in several companies.
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE lower(email) = lower($1) ORDER BY created_at DESC LIMIT 1;`, customerColumns)
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}
	return customer, nil
}

func (r *PgxCustomerRepository) FindCustomerByPortalToken(ctx context.Context, token string, now time.Time) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE portal_token = $1 AND portal_token_expires > $2;`, customerColumns)
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, token, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by portal token: %w", err)
	}
	return customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, companyID string, limit int, nextToken *string, search, tag string) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE company_id = $1`, customerColumns)
	args := []interface{}{companyID}
	argPos := 2

	if search != "" {
		query += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)`, argPos, argPos, argPos)
		args = append(args, "%"+search+"%")
		argPos++
	}
	if tag != "" {
		query += fmt.Sprintf(` AND $%d = ANY(tags)`, argPos)
		args = append(args, tag)
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

	// Fetch one extra row to detect whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *customer)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}

	var nextTokenVal *string
	if len(customers) > limit {
		customers = customers[:limit]
		token := pagination.EncodeDateBasedToken(customers[len(customers)-1].CreatedAt)
		nextTokenVal = &token
	}
	return customers, nextTokenVal, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
        INSERT INTO customers (customer_id, company_id, first_name, last_name, email, phone,
            address, city, state, zip, notes, tags,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID, customer.CompanyID, customer.FirstName, customer.LastName,
		customer.Email, customer.Phone, customer.Address, customer.City, customer.State, customer.Zip,
		customer.Notes, customer.Tags,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
        UPDATE customers
        SET first_name = $1, last_name = $2, email = $3, phone = $4,
            address = $5, city = $6, state = $7, zip = $8, notes = $9, tags = $10,
            last_updated_at = $11, last_updated_by = $12
        WHERE company_id = $13 AND customer_id = $14;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.Address, customer.City, customer.State, customer.Zip, customer.Notes, customer.Tags,
		customer.LastUpdatedAt, customer.LastUpdatedBy, customer.CompanyID, customer.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, companyID, customerID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE company_id = $1 AND customer_id = $2;`, companyID, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCustomerRepository) SetPortalToken(ctx context.Context, companyID, customerID, token string, expiresAt time.Time) error {
	query := `
        UPDATE customers
        SET portal_token = $1, portal_token_expires = $2
        WHERE company_id = $3 AND customer_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, token, expiresAt, companyID, customerID)
	if err != nil {
		return fmt.Errorf("failed to set portal token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCustomerRepository) ClearPortalToken(ctx context.Context, companyID, customerID string) error {
	query := `
        UPDATE customers
        SET portal_token = NULL, portal_token_expires = NULL
        WHERE company_id = $1 AND customer_id = $2;
    `
	if _, err := r.Pool.Exec(ctx, query, companyID, customerID); err != nil {
		return fmt.Errorf("failed to clear portal token: %w", err)
	}
	return nil
}
