package repositories

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRate retrieves the current exchange rate for a currency pair.
	// Returns apperrors.ErrNotFound when no rate is on file.
	FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListRates retrieves all current exchange rate rows.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// ListRateHistory retrieves up to limit historical observations for a
	// currency pair, newest first.
	ListRateHistory(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRateHistory, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertRate inserts or replaces the current rate for the pair. The pair
	// is the natural key, so concurrent refresh cycles are idempotent.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error

	// AppendRateHistory records one observation in the append-only audit log.
	AppendRateHistory(ctx context.Context, history domain.ExchangeRateHistory) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
