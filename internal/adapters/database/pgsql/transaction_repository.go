package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// PgxTransactionRepository implements the transaction repository ports using pgxpool.
type PgxTransactionRepository struct {
	baseRepository
}

// NewTransactionRepository creates a new PgxTransactionRepository.
func NewTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{baseRepository{db: db}}
}

// SaveTransaction inserts a new transaction, joining tx when non-nil.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, contact_id, created_by_id, category, type, amount,
			currency_code, item_name, quantity, description, date,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.executor(tx).Exec(ctx, query,
		txn.TransactionID, txn.ContactID, txn.CreatedByID, txn.Category, txn.Type, txn.Amount,
		nullIfEmpty(txn.CurrencyCode), nullIfEmpty(txn.ItemName), txn.Quantity, nullIfEmpty(txn.Description), txn.Date,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	return nil
}

// UpdateTransaction persists changes to an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		UPDATE transactions SET
			category = $2, type = $3, amount = $4, currency_code = $5, item_name = $6,
			quantity = $7, description = $8, date = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1
	`
	tag, err := r.executor(tx).Exec(ctx, query,
		txn.TransactionID, txn.Category, txn.Type, txn.Amount, nullIfEmpty(txn.CurrencyCode),
		nullIfEmpty(txn.ItemName), txn.Quantity, nullIfEmpty(txn.Description), txn.Date,
		txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error updating transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AppendTransactionHistory records an audit-trail entry for a mutation.
// Previous and new state are stored as JSONB documents.
func (r *PgxTransactionRepository) AppendTransactionHistory(ctx context.Context, tx pgx.Tx, history domain.TransactionHistory) error {
	query := `
		INSERT INTO transaction_history (
			history_id, transaction_id, user_id, change_type, previous_state, new_state, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.executor(tx).Exec(ctx, query,
		history.HistoryID, history.TransactionID, history.UserID, history.ChangeType,
		history.PreviousState, history.NewState, history.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error appending transaction history: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a single transaction with its witnesses.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT
			transaction_id, contact_id, created_by_id, category, type, amount,
			COALESCE(currency_code, ''), COALESCE(item_name, ''), quantity, COALESCE(description, ''), date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1
	`
	txn := &domain.Transaction{}
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID, &txn.ContactID, &txn.CreatedByID, &txn.Category, &txn.Type, &txn.Amount,
		&txn.CurrencyCode, &txn.ItemName, &txn.Quantity, &txn.Description, &txn.Date,
		&txn.CreatedAt, &txn.CreatedBy, &txn.LastUpdatedAt, &txn.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding transaction: %w", err)
	}

	witnesses, err := r.loadWitnesses(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn.Witnesses = witnesses[transactionID]
	return txn, nil
}

// ListTransactionsByCreator retrieves all transactions created by a user,
// newest date first, with witnesses attached.
func (r *PgxTransactionRepository) ListTransactionsByCreator(ctx context.Context, createdByID string) ([]domain.Transaction, error) {
	query := `
		SELECT
			transaction_id, contact_id, created_by_id, category, type, amount,
			COALESCE(currency_code, ''), COALESCE(item_name, ''), quantity, COALESCE(description, ''), date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE created_by_id = $1
		ORDER BY date DESC
	`
	rows, err := r.db.Query(ctx, query, createdByID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	var ids []string
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.TransactionID, &txn.ContactID, &txn.CreatedByID, &txn.Category, &txn.Type, &txn.Amount,
			&txn.CurrencyCode, &txn.ItemName, &txn.Quantity, &txn.Description, &txn.Date,
			&txn.CreatedAt, &txn.CreatedBy, &txn.LastUpdatedAt, &txn.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		txns = append(txns, txn)
		ids = append(ids, txn.TransactionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	if len(ids) > 0 {
		witnesses, err := r.loadWitnesses(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range txns {
			txns[i].Witnesses = witnesses[txns[i].TransactionID]
		}
	}
	return txns, nil
}

// SumFundsAmountsByType sums the amounts of a contact's FUNDS transactions
// grouped by type. A FUNDS row with a null amount would violate the data
// invariant; COALESCE clamps its contribution to zero rather than failing the
// aggregation.
func (r *PgxTransactionRepository) SumFundsAmountsByType(ctx context.Context, contactID string) (map[domain.TransactionType]decimal.Decimal, error) {
	query := `
		SELECT type, COALESCE(SUM(COALESCE(amount, 0)), 0)
		FROM transactions
		WHERE contact_id = $1 AND category = 'FUNDS'
		GROUP BY type
	`
	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating transactions: %w", err)
	}
	defer rows.Close()

	sums := make(map[domain.TransactionType]decimal.Decimal)
	for rows.Next() {
		var txnType domain.TransactionType
		var sum decimal.Decimal
		if err := rows.Scan(&txnType, &sum); err != nil {
			return nil, fmt.Errorf("error scanning transaction aggregate: %w", err)
		}
		sums[txnType] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction aggregates: %w", err)
	}
	return sums, nil
}

// loadWitnesses fetches witnesses for a set of transactions in one query.
func (r *PgxTransactionRepository) loadWitnesses(ctx context.Context, transactionIDs []string) (map[string][]domain.Witness, error) {
	query := `
		SELECT witness_id, transaction_id, user_id, status, invited_at, acknowledged_at
		FROM witnesses
		WHERE transaction_id = ANY($1)
		ORDER BY invited_at
	`
	rows, err := r.db.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading witnesses: %w", err)
	}
	defer rows.Close()

	witnesses := make(map[string][]domain.Witness)
	for rows.Next() {
		var w domain.Witness
		if err := rows.Scan(&w.WitnessID, &w.TransactionID, &w.UserID, &w.Status, &w.InvitedAt, &w.AcknowledgedAt); err != nil {
			return nil, fmt.Errorf("error scanning witness: %w", err)
		}
		witnesses[w.TransactionID] = append(witnesses[w.TransactionID], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating witnesses: %w", err)
	}
	return witnesses, nil
}

// nullIfEmpty maps empty strings to SQL NULL for nullable text columns.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
