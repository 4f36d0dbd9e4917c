// Package cacheport defines the ephemeral cache boundary used by the fx
// engine. The cache is never authoritative: a miss, an expiry or a cache
// backend failure must all degrade to a durable-store read, never to an error
// surfaced to the caller.
package cacheport

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache caches exchange rates under keys of the form rate:{from}:{to}.
type RateCache interface {
	// GetRate returns the cached rate for key and whether it was present.
	// A backend failure is returned as an error so callers can log it, but
	// callers must treat it like a miss.
	GetRate(ctx context.Context, key string) (decimal.Decimal, bool, error)

	// SetRate stores the rate under key with the given time-to-live.
	SetRate(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error
}

// RateKey builds the cache key for a currency pair.
func RateKey(from, to string) string {
	return "rate:" + from + ":" + to
}
