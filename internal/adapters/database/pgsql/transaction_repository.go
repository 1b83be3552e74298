package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	"github.com/tradehive/tradehive_backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, company_id, type, category, description, amount, date, invoice_id,
		created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID, &t.CompanyID, &t.Type, &t.Category, &t.Description, &t.Amount, &t.Date, &t.InvoiceID,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE company_id = $1 AND transaction_id = $2;`, transactionColumns)
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, companyID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, txnType domain.TransactionType, category string, from, to *time.Time) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE company_id = $1`, transactionColumns)
	args := []interface{}{companyID}
	argPos := 2

	if txnType != "" {
		query += fmt.Sprintf(` AND type = $%d`, argPos)
		args = append(args, txnType)
		argPos++
	}
	if category != "" {
		query += fmt.Sprintf(` AND category = $%d`, argPos)
		args = append(args, category)
		argPos++
	}
	if from != nil {
		query += fmt.Sprintf(` AND date >= $%d`, argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		query += fmt.Sprintf(` AND date <= $%d`, argPos)
		args = append(args, *to)
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += fmt.Sprintf(` AND (date, created_at) < ($%d, $%d)`, argPos, argPos+1)
		args = append(args, lastDate, lastCreatedAt)
		argPos += 2
	}

	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var nextTokenVal *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
	}
	return txns, nextTokenVal, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        INSERT INTO transactions (transaction_id, company_id, type, category, description, amount, date, invoice_id,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID, txn.CompanyID, txn.Type, txn.Category, txn.Description, txn.Amount, txn.Date, txn.InvoiceID,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        UPDATE transactions
        SET category = $1, description = $2, amount = $3, date = $4, last_updated_at = $5, last_updated_by = $6
        WHERE company_id = $7 AND transaction_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		txn.Category, txn.Description, txn.Amount, txn.Date,
		txn.LastUpdatedAt, txn.LastUpdatedBy, txn.CompanyID, txn.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE company_id = $1 AND transaction_id = $2;`, companyID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) SumByTypeAndCategory(ctx context.Context, companyID string, from, to time.Time) (map[domain.TransactionType]map[string]decimal.Decimal, error) {
	query := `
        SELECT type, category, COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE company_id = $1 AND date >= $2 AND date <= $3
        GROUP BY type, category;
    `
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer rows.Close()

	result := map[domain.TransactionType]map[string]decimal.Decimal{}
	for rows.Next() {
		var txnType domain.TransactionType
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&txnType, &category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		if result[txnType] == nil {
			result[txnType] = map[string]decimal.Decimal{}
		}
		result[txnType][category] = total
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", rows.Err())
	}
	return result, nil
}
