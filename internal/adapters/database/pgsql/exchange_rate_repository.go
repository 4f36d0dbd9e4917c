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

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

// UpsertRate inserts or replaces the current rate for a currency pair. The
// pair is the natural key, so overlapping refresh cycles are idempotent.
func (r *PgxExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate, provider,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			provider = EXCLUDED.provider,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate, rate.Provider,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error upserting exchange rate: %w", err)
	}
	return nil
}

// AppendRateHistory records one observation in the append-only audit log.
func (r *PgxExchangeRateRepository) AppendRateHistory(ctx context.Context, history domain.ExchangeRateHistory) error {
	query := `
		INSERT INTO exchange_rate_history (
			history_id, from_currency_code, to_currency_code, rate, provider, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		history.HistoryID, history.FromCurrencyCode, history.ToCurrencyCode,
		history.Rate, history.Provider, history.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error appending exchange rate history: %w", err)
	}
	return nil
}

// FindRate retrieves the current exchange rate for a currency pair.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, provider,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, fromCode, toCode).Scan(
		&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &rate.Provider,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// ListRates retrieves all current exchange rate rows.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, provider,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		ORDER BY to_currency_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		err := rows.Scan(
			&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &rate.Provider,
			&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning exchange rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}

// ListRateHistory retrieves up to limit historical observations, newest first.
func (r *PgxExchangeRateRepository) ListRateHistory(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRateHistory, error) {
	query := `
		SELECT history_id, from_currency_code, to_currency_code, rate, provider, created_at
		FROM exchange_rate_history
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, fromCode, toCode, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rate history: %w", err)
	}
	defer rows.Close()

	var history []domain.ExchangeRateHistory
	for rows.Next() {
		var h domain.ExchangeRateHistory
		err := rows.Scan(&h.HistoryID, &h.FromCurrencyCode, &h.ToCurrencyCode, &h.Rate, &h.Provider, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning exchange rate history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate history: %w", err)
	}
	return history, nil
}
