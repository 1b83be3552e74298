package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// TransactionReader defines read operations for bookkeeping transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction within a company.
	FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions for a
	// company using token-based pagination, optionally filtered by type,
	// category and date range.
	ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, txnType domain.TransactionType, category string, from, to *time.Time) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for bookkeeping transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction's details.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction from a company.
	DeleteTransaction(ctx context.Context, companyID, transactionID string) error
}

// TransactionAggregator defines reporting rollups over transactions
type TransactionAggregator interface {
	// SumByTypeAndCategory returns, per transaction type, the total amount
	// grouped by category within the inclusive date range.
	SumByTypeAndCategory(ctx context.Context, companyID string, from, to time.Time) (map[domain.TransactionType]map[string]decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionAggregator
}
