// Package fxsource defines the boundary to external exchange-rate providers.
// Concrete sources live in internal/adapters/fxproviders; the fx engine only
// sees an ordered list of RateSource implementations and tries them in
// sequence until one yields usable rates.
package fxsource

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource fetches the latest USD-based rates from one external provider.
type RateSource interface {
	// Name identifies the provider in logs, stored rates and history rows.
	Name() string

	// FetchLatestUSDRates returns a mapping of currency code to its rate
	// relative to USD. Implementations must bound the underlying HTTP request
	// with a timeout so a hung provider cannot stall a refresh cycle, and must
	// return an error for missing credentials, transport failures and
	// malformed or unsuccessful payloads.
	FetchLatestUSDRates(ctx context.Context) (map[string]decimal.Decimal, error)
}
