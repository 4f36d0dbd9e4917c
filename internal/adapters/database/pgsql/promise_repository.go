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

// PgxPromiseRepository implements the promise repository ports using pgxpool.
type PgxPromiseRepository struct {
	db *pgxpool.Pool
}

// NewPromiseRepository creates a new PgxPromiseRepository.
func NewPromiseRepository(db *pgxpool.Pool) *PgxPromiseRepository {
	return &PgxPromiseRepository{db: db}
}

// SavePromise inserts a new promise.
func (r *PgxPromiseRepository) SavePromise(ctx context.Context, promise domain.Promise) error {
	query := `
		INSERT INTO promises (
			promise_id, user_id, description, promise_to, due_date, priority, status,
			category, notes, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		promise.PromiseID, promise.UserID, promise.Description, promise.PromiseTo,
		promise.DueDate, promise.Priority, promise.Status,
		nullIfEmpty(promise.Category), nullIfEmpty(promise.Notes),
		promise.CreatedAt, promise.CreatedBy, promise.LastUpdatedAt, promise.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting promise: %w", err)
	}
	return nil
}

// UpdatePromise persists changes to an existing promise.
func (r *PgxPromiseRepository) UpdatePromise(ctx context.Context, promise domain.Promise) error {
	query := `
		UPDATE promises SET
			description = $2, promise_to = $3, due_date = $4, priority = $5, status = $6,
			category = $7, notes = $8, last_updated_at = $9, last_updated_by = $10
		WHERE promise_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		promise.PromiseID, promise.Description, promise.PromiseTo, promise.DueDate,
		promise.Priority, promise.Status, nullIfEmpty(promise.Category), nullIfEmpty(promise.Notes),
		promise.LastUpdatedAt, promise.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error updating promise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePromise removes a promise.
func (r *PgxPromiseRepository) DeletePromise(ctx context.Context, promiseID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promises WHERE promise_id = $1`, promiseID)
	if err != nil {
		return fmt.Errorf("error deleting promise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPromiseByID retrieves a single promise.
func (r *PgxPromiseRepository) FindPromiseByID(ctx context.Context, promiseID string) (*domain.Promise, error) {
	query := `
		SELECT promise_id, user_id, description, promise_to, due_date, priority, status,
			COALESCE(category, ''), COALESCE(notes, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM promises
		WHERE promise_id = $1
	`
	promise := &domain.Promise{}
	err := r.db.QueryRow(ctx, query, promiseID).Scan(
		&promise.PromiseID, &promise.UserID, &promise.Description, &promise.PromiseTo,
		&promise.DueDate, &promise.Priority, &promise.Status,
		&promise.Category, &promise.Notes,
		&promise.CreatedAt, &promise.CreatedBy, &promise.LastUpdatedAt, &promise.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding promise: %w", err)
	}
	return promise, nil
}

// ListPromisesByUser retrieves a user's promises ordered by due date.
func (r *PgxPromiseRepository) ListPromisesByUser(ctx context.Context, userID string) ([]domain.Promise, error) {
	query := `
		SELECT promise_id, user_id, description, promise_to, due_date, priority, status,
			COALESCE(category, ''), COALESCE(notes, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM promises
		WHERE user_id = $1
		ORDER BY due_date
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing promises: %w", err)
	}
	defer rows.Close()

	var promises []domain.Promise
	for rows.Next() {
		var promise domain.Promise
		err := rows.Scan(
			&promise.PromiseID, &promise.UserID, &promise.Description, &promise.PromiseTo,
			&promise.DueDate, &promise.Priority, &promise.Status,
			&promise.Category, &promise.Notes,
			&promise.CreatedAt, &promise.CreatedBy, &promise.LastUpdatedAt, &promise.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning promise: %w", err)
		}
		promises = append(promises, promise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promises: %w", err)
	}
	return promises, nil
}
