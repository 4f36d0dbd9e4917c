// Package rediscache provides the Redis-backed implementation of the rate
// cache port. Values are stored as decimal strings so no precision is lost on
// the round trip.
package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateCache caches exchange rates in Redis with per-key TTLs.
type RateCache struct {
	client *redis.Client
}

// New creates a RateCache backed by a single Redis instance.
func New(addr, password string) *RateCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &RateCache{client: client}
}

// NewWithClient creates a RateCache around an existing client. Used by tests
// and by callers that manage the client lifecycle themselves.
func NewWithClient(client *redis.Client) *RateCache {
	return &RateCache{client: client}
}

// GetRate returns the cached rate for key and whether it was present. A
// missing or expired key is a plain miss; only backend failures produce an
// error, and callers treat those as misses too.
func (c *RateCache) GetRate(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		// A corrupt entry is as good as absent.
		return decimal.Decimal{}, false, fmt.Errorf("corrupt cached rate %s: %w", key, err)
	}
	return rate, true, nil
}

// SetRate stores the rate under key with the given time-to-live.
func (c *RateCache) SetRate(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, rate.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RateCache) Close() error {
	return c.client.Close()
}
