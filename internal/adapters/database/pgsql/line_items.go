package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// querier is the subset of pgx operations shared by *pgxpool.Pool and
// pgx.Tx, so line item helpers work inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const (
	lineItemParentEstimate = "estimate"
	lineItemParentInvoice  = "invoice"
)

// insertLineItems writes a document's line items, preserving order via the
// position column. Uses a pgx batch to avoid a round trip per row.
func insertLineItems(ctx context.Context, q querier, parentType, parentID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO line_items (line_item_id, parent_type, parent_id, position, description, quantity, rate, amount, item_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(query, item.LineItemID, parentType, parentID, i,
			item.Description, item.Quantity, item.Rate, item.Amount, item.Type)
	}
	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}
	return br.Close()
}

// deleteLineItems removes all line items belonging to a document.
func deleteLineItems(ctx context.Context, q querier, parentType, parentID string) error {
	if _, err := q.Exec(ctx, `DELETE FROM line_items WHERE parent_type = $1 AND parent_id = $2;`, parentType, parentID); err != nil {
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	return nil
}

// loadLineItems fetches line items for one or more documents, grouped by
// parent ID and ordered by position.
func loadLineItems(ctx context.Context, q querier, parentType string, parentIDs []string) (map[string][]domain.LineItem, error) {
	result := make(map[string][]domain.LineItem, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	query := `
        SELECT parent_id, line_item_id, description, quantity, rate, amount, item_type
        FROM line_items
        WHERE parent_type = $1 AND parent_id = ANY($2)
        ORDER BY parent_id, position;
    `
	rows, err := q.Query(ctx, query, parentType, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var parentID string
		var item domain.LineItem
		if err := rows.Scan(&parentID, &item.LineItemID, &item.Description, &item.Quantity, &item.Rate, &item.Amount, &item.Type); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		result[parentID] = append(result[parentID], item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", rows.Err())
	}
	return result, nil
}
