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

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, company_id, customer_id, estimate_id, job_id, invoice_number,
		title, description, status, due_date, paid_date,
		subtotal, tax_rate, tax, total, amount_paid, notes,
		created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID, &inv.CompanyID, &inv.CustomerID, &inv.EstimateID, &inv.JobID, &inv.InvoiceNumber,
		&inv.Title, &inv.Description, &inv.Status, &inv.DueDate, &inv.PaidDate,
		&inv.Subtotal, &inv.TaxRate, &inv.Tax, &inv.Total, &inv.AmountPaid, &inv.Notes,
		&inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE company_id = $1 AND invoice_id = $2;`, invoiceColumns)
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, companyID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	items, err := loadLineItems(ctx, r.Pool, lineItemParentInvoice, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	invoice.LineItems = items[invoiceID]
	return invoice, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string, status domain.InvoiceStatus, customerID string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE company_id = $1`, invoiceColumns)
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
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	var nextTokenVal *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		token := pagination.EncodeDateBasedToken(invoices[len(invoices)-1].CreatedAt)
		nextTokenVal = &token
	}

	if err := r.attachLineItems(ctx, invoices); err != nil {
		return nil, nil, err
	}
	return invoices, nextTokenVal, nil
}

func (r *PgxInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, companyID, customerID string) ([]domain.Invoice, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM invoices
        WHERE company_id = $1 AND customer_id = $2 AND status <> $3
        ORDER BY created_at DESC;`, invoiceColumns)

	rows, err := r.Pool.Query(ctx, query, companyID, customerID, domain.InvoiceDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	if err := r.attachLineItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) attachLineItems(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
	}
	items, err := loadLineItems(ctx, r.Pool, lineItemParentInvoice, ids)
	if err != nil {
		return err
	}
	for i := range invoices {
		invoices[i].LineItems = items[invoices[i].InvoiceID]
	}
	return nil
}

const insertInvoiceQuery = `
        INSERT INTO invoices (invoice_id, company_id, customer_id, estimate_id, job_id, invoice_number,
            title, description, status, due_date, paid_date,
            subtotal, tax_rate, tax, total, amount_paid, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
    `

func invoiceInsertArgs(inv domain.Invoice) []interface{} {
	return []interface{}{
		inv.InvoiceID, inv.CompanyID, inv.CustomerID, inv.EstimateID, inv.JobID, inv.InvoiceNumber,
		inv.Title, inv.Description, inv.Status, inv.DueDate, inv.PaidDate,
		inv.Subtotal, inv.TaxRate, inv.Tax, inv.Total, inv.AmountPaid, inv.Notes,
		inv.CreatedAt, inv.CreatedBy, inv.LastUpdatedAt, inv.LastUpdatedBy,
	}
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, insertInvoiceQuery, invoiceInsertArgs(invoice)...); err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	if err := insertLineItems(ctx, tx, lineItemParentInvoice, invoice.InvoiceID, invoice.LineItems); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        UPDATE invoices
        SET title = $1, description = $2, status = $3, due_date = $4,
            subtotal = $5, tax_rate = $6, tax = $7, total = $8, notes = $9,
            last_updated_at = $10, last_updated_by = $11
        WHERE company_id = $12 AND invoice_id = $13;
    `
	cmdTag, err := tx.Exec(ctx, query,
		invoice.Title, invoice.Description, invoice.Status, invoice.DueDate,
		invoice.Subtotal, invoice.TaxRate, invoice.Tax, invoice.Total, invoice.Notes,
		invoice.LastUpdatedAt, invoice.LastUpdatedBy, invoice.CompanyID, invoice.InvoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %w", apperrors.ErrNotFound)
	}

	if err := deleteLineItems(ctx, tx, lineItemParentInvoice, invoice.InvoiceID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, lineItemParentInvoice, invoice.InvoiceID, invoice.LineItems); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, companyID, invoiceID string, status domain.InvoiceStatus, paidDate *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE invoices
        SET status = $1, paid_date = COALESCE($2, paid_date), last_updated_at = $3, last_updated_by = $4
        WHERE company_id = $5 AND invoice_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, status, paidDate, updatedAt, updatedBy, companyID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, companyID, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := deleteLineItems(ctx, tx, lineItemParentInvoice, invoiceID); err != nil {
		return err
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE company_id = $1 AND invoice_id = $2;`, companyID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %w", apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) MarkOverdueInvoices(ctx context.Context, companyID string, now time.Time) (int64, error) {
	query := `
        UPDATE invoices
        SET status = $1, last_updated_at = $2
        WHERE company_id = $3 AND due_date IS NOT NULL AND due_date < $2
          AND status IN ($4, $5, $6);
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		domain.InvoiceOverdue, now, companyID,
		domain.InvoiceSent, domain.InvoiceViewed, domain.InvoicePartial)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// ConvertEstimate runs the estimate to invoice conversion in one
// transaction. The unique index on invoices.estimate_id is what rejects a
// second conversion, even under concurrency.
func (r *PgxInvoiceRepository) ConvertEstimate(ctx context.Context, invoice domain.Invoice, markApproved bool, approvedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, insertInvoiceQuery, invoiceInsertArgs(invoice)...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("estimate already converted: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert converted invoice: %w", err)
	}
	if err := insertLineItems(ctx, tx, lineItemParentInvoice, invoice.InvoiceID, invoice.LineItems); err != nil {
		return err
	}

	if markApproved && invoice.EstimateID != nil {
		update := `
            UPDATE estimates
            SET status = $1, approved_at = $2, last_updated_at = $3, last_updated_by = $4
            WHERE company_id = $5 AND estimate_id = $6;
        `
		if _, err := tx.Exec(ctx, update,
			domain.EstimateApproved, approvedAt, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
			invoice.CompanyID, *invoice.EstimateID); err != nil {
			return fmt.Errorf("failed to mark estimate approved: %w", err)
		}
	}
	return r.Commit(ctx, tx)
}

// ApplyPayment records the payment, rolls it into the invoice and books
// the matching income entry atomically. A duplicate stripe payment ID
// means the webhook was replayed; nothing is changed and ErrDuplicate is
// returned so the caller can acknowledge without side effects.
func (r *PgxInvoiceRepository) ApplyPayment(ctx context.Context, payment domain.Payment, incomeTxn *domain.Transaction) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertPayment := `
        INSERT INTO payments (payment_id, company_id, invoice_id, amount, method, stripe_payment_id, notes, paid_at,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, insertPayment,
		payment.PaymentID, payment.CompanyID, payment.InvoiceID, payment.Amount, payment.Method,
		payment.StripePaymentID, payment.Notes, payment.PaidAt,
		payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, fmt.Errorf("payment already recorded: %w", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	// Increment and re-derive status in one statement so concurrent
	// payments against the same invoice serialize on the row lock.
	updateInvoice := fmt.Sprintf(`
        UPDATE invoices
        SET amount_paid = amount_paid + $1,
            status = CASE WHEN amount_paid + $1 >= total THEN 'paid' ELSE 'partial' END,
            paid_date = CASE WHEN amount_paid + $1 >= total THEN $2 ELSE paid_date END,
            last_updated_at = $3, last_updated_by = $4
        WHERE company_id = $5 AND invoice_id = $6 AND status NOT IN ('void')
        RETURNING %s;
    `, invoiceColumns)

	invoice, err := scanInvoice(tx.QueryRow(ctx, updateInvoice,
		payment.Amount, payment.PaidAt,
		payment.LastUpdatedAt, payment.LastUpdatedBy, payment.CompanyID, payment.InvoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice not found or void: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to apply payment to invoice: %w", err)
	}

	if incomeTxn != nil {
		insertTxn := `
            INSERT INTO transactions (transaction_id, company_id, type, category, description, amount, date, invoice_id,
                created_at, created_by, last_updated_at, last_updated_by)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
        `
		_, err = tx.Exec(ctx, insertTxn,
			incomeTxn.TransactionID, incomeTxn.CompanyID, incomeTxn.Type, incomeTxn.Category,
			incomeTxn.Description, incomeTxn.Amount, incomeTxn.Date, incomeTxn.InvoiceID,
			incomeTxn.CreatedAt, incomeTxn.CreatedBy, incomeTxn.LastUpdatedAt, incomeTxn.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert income transaction: %w", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	items, err := loadLineItems(ctx, r.Pool, lineItemParentInvoice, []string{invoice.InvoiceID})
	if err != nil {
		return nil, err
	}
	invoice.LineItems = items[invoice.InvoiceID]
	return invoice, nil
}

func (r *PgxInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, companyID, invoiceID string) ([]domain.Payment, error) {
	query := `
        SELECT payment_id, company_id, invoice_id, amount, method, stripe_payment_id, notes, paid_at,
            created_at, created_by, last_updated_at, last_updated_by
        FROM payments
        WHERE company_id = $1 AND invoice_id = $2
        ORDER BY paid_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, companyID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.PaymentID, &p.CompanyID, &p.InvoiceID, &p.Amount, &p.Method, &p.StripePaymentID,
			&p.Notes, &p.PaidAt,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}
