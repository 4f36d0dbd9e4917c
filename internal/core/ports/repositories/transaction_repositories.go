package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction with its witnesses.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByCreator retrieves all transactions created by a user,
	// newest date first, with witnesses attached.
	ListTransactionsByCreator(ctx context.Context, createdByID string) ([]domain.Transaction, error)

	// SumFundsAmountsByType sums the amounts of a contact's FUNDS transactions
	// grouped by transaction type. Types with no rows are absent from the map.
	SumFundsAmountsByType(ctx context.Context, contactID string) (map[domain.TransactionType]decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction. When tx is non-nil the
	// insert joins that database transaction.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransaction persists changes to an existing transaction.
	UpdateTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// AppendTransactionHistory records an audit-trail entry for a mutation.
	AppendTransactionHistory(ctx context.Context, tx pgx.Tx, history domain.TransactionHistory) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionManager
}
