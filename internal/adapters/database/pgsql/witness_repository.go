package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// PgxWitnessRepository implements the witness repository ports using pgxpool.
type PgxWitnessRepository struct {
	baseRepository
}

// NewWitnessRepository creates a new PgxWitnessRepository.
func NewWitnessRepository(db *pgxpool.Pool) *PgxWitnessRepository {
	return &PgxWitnessRepository{baseRepository{db: db}}
}

// SaveWitnesses inserts witness records, skipping duplicates on
// (transaction_id, user_id). Joins tx when non-nil.
func (r *PgxWitnessRepository) SaveWitnesses(ctx context.Context, tx pgx.Tx, witnesses []domain.Witness) error {
	query := `
		INSERT INTO witnesses (witness_id, transaction_id, user_id, status, invited_at, acknowledged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transaction_id, user_id) DO NOTHING
	`
	exec := r.executor(tx)
	for _, w := range witnesses {
		_, err := exec.Exec(ctx, query, w.WitnessID, w.TransactionID, w.UserID, w.Status, w.InvitedAt, w.AcknowledgedAt)
		if err != nil {
			return fmt.Errorf("error inserting witness: %w", err)
		}
	}
	return nil
}

// UpdateWitness persists a status change on one witness record.
func (r *PgxWitnessRepository) UpdateWitness(ctx context.Context, tx pgx.Tx, witness domain.Witness) error {
	query := `
		UPDATE witnesses SET status = $2, acknowledged_at = $3
		WHERE witness_id = $1
	`
	tag, err := r.executor(tx).Exec(ctx, query, witness.WitnessID, witness.Status, witness.AcknowledgedAt)
	if err != nil {
		return fmt.Errorf("error updating witness: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ResetWitnessesToModified flips every witness on the transaction to MODIFIED
// and clears their acknowledgement timestamps.
func (r *PgxWitnessRepository) ResetWitnessesToModified(ctx context.Context, tx pgx.Tx, transactionID string) error {
	query := `
		UPDATE witnesses SET status = $2, acknowledged_at = NULL
		WHERE transaction_id = $1
	`
	_, err := r.executor(tx).Exec(ctx, query, transactionID, domain.WitnessModified)
	if err != nil {
		return fmt.Errorf("error resetting witnesses: %w", err)
	}
	return nil
}

// FindWitnessByID retrieves a single witness record.
func (r *PgxWitnessRepository) FindWitnessByID(ctx context.Context, witnessID string) (*domain.Witness, error) {
	query := `
		SELECT witness_id, transaction_id, user_id, status, invited_at, acknowledged_at
		FROM witnesses
		WHERE witness_id = $1
	`
	w := &domain.Witness{}
	err := r.db.QueryRow(ctx, query, witnessID).Scan(
		&w.WitnessID, &w.TransactionID, &w.UserID, &w.Status, &w.InvitedAt, &w.AcknowledgedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding witness: %w", err)
	}
	return w, nil
}

// ListWitnessesByTransaction retrieves all witnesses on a transaction.
func (r *PgxWitnessRepository) ListWitnessesByTransaction(ctx context.Context, transactionID string) ([]domain.Witness, error) {
	query := `
		SELECT witness_id, transaction_id, user_id, status, invited_at, acknowledged_at
		FROM witnesses
		WHERE transaction_id = $1
		ORDER BY invited_at
	`
	return r.queryWitnesses(ctx, query, transactionID)
}

// ListWitnessesByUser retrieves a user's witness requests, newest invite
// first, optionally filtered by status.
func (r *PgxWitnessRepository) ListWitnessesByUser(ctx context.Context, userID string, status domain.WitnessStatus) ([]domain.Witness, error) {
	if status != "" {
		query := `
			SELECT witness_id, transaction_id, user_id, status, invited_at, acknowledged_at
			FROM witnesses
			WHERE user_id = $1 AND status = $2
			ORDER BY invited_at DESC
		`
		return r.queryWitnesses(ctx, query, userID, status)
	}
	query := `
		SELECT witness_id, transaction_id, user_id, status, invited_at, acknowledged_at
		FROM witnesses
		WHERE user_id = $1
		ORDER BY invited_at DESC
	`
	return r.queryWitnesses(ctx, query, userID)
}

func (r *PgxWitnessRepository) queryWitnesses(ctx context.Context, query string, args ...any) ([]domain.Witness, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing witnesses: %w", err)
	}
	defer rows.Close()

	var witnesses []domain.Witness
	for rows.Next() {
		var w domain.Witness
		if err := rows.Scan(&w.WitnessID, &w.TransactionID, &w.UserID, &w.Status, &w.InvitedAt, &w.AcknowledgedAt); err != nil {
			return nil, fmt.Errorf("error scanning witness: %w", err)
		}
		witnesses = append(witnesses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating witnesses: %w", err)
	}
	return witnesses, nil
}
