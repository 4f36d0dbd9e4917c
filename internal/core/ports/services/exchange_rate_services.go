package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations on exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRate returns the exchange rate between two currencies, pivoting
	// through USD. Returns apperrors.ErrRateUnavailable when a required pair
	// has no cached or stored rate.
	GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// Convert converts amount from one currency to another, rounded to two
	// decimal places using half-up rounding. Same-currency conversions return
	// the amount untouched without any rate lookup.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// ListRates returns the current USD-pivoted rate snapshot.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// GetRateHistory returns up to limit historical observations for a pair,
	// newest first.
	GetRateHistory(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRateHistory, error)
}

// ExchangeRateRefresherSvc defines the provider refresh entry point, invoked
// at startup and by the recurring scheduler.
type ExchangeRateRefresherSvc interface {
	// RefreshRates tries the configured providers in priority order and, on
	// the first success, upserts current rates, appends history and warms the
	// cache. Provider failures never escape this method; when every provider
	// fails the previously stored rates remain in effect.
	RefreshRates(ctx context.Context)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateRefresherSvc
}
