package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	"github.com/wathiqah/wathiqah-backend/internal/core/ports/cacheport"
	"github.com/wathiqah/wathiqah-backend/internal/core/ports/fxsource"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
)

func init() {
	// Cross-currency conversions compose two independent divisions through the
	// USD pivot; the default 16 digits of division precision is not enough to
	// keep multi-step monetary math drift-free.
	if decimal.DivisionPrecision < 28 {
		decimal.DivisionPrecision = 28
	}
}

// refreshedBy is the audit identity recorded on provider-driven rate writes.
const refreshedBy = "rate-refresher"

// ExchangeRateService keeps USD-pivoted exchange rates fresh and answers
// rate lookups and conversions. Rates flow from external providers into the
// durable store and cache via RefreshRates; GetRate and Convert are read-only
// apart from the idempotent cache write-through.
type ExchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	cache    cacheport.RateCache
	sources  []fxsource.RateSource
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewExchangeRateService creates a new ExchangeRateService. Sources are tried
// in the order given; the first provider returning usable rates wins.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	cache cacheport.RateCache,
	sources []fxsource.RateSource,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ExchangeRateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExchangeRateService{
		rateRepo: rateRepo,
		cache:    cache,
		sources:  sources,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// RefreshRates fetches the latest USD rates from the configured providers in
// priority order and persists the first usable response. Provider failures are
// logged and absorbed; when every provider fails the previously stored rates
// remain in effect untouched.
func (s *ExchangeRateService) RefreshRates(ctx context.Context) {
	for _, source := range s.sources {
		rates, err := source.FetchLatestUSDRates(ctx)
		if err != nil {
			s.logger.Warn("Exchange rate provider failed",
				slog.String("provider", source.Name()),
				slog.String("error", err.Error()))
			continue
		}
		if len(rates) == 0 {
			s.logger.Warn("Exchange rate provider returned no rates",
				slog.String("provider", source.Name()))
			continue
		}
		if err := s.storeRates(ctx, rates, source.Name()); err != nil {
			s.logger.Warn("Failed to persist rates from provider",
				slog.String("provider", source.Name()),
				slog.String("error", err.Error()))
			continue
		}
		s.logger.Info("Exchange rates updated successfully",
			slog.String("provider", source.Name()))
		return
	}
	s.logger.Error("All exchange rate providers failed")
}

// storeRates upserts the current rate, appends a history row and warms the
// cache for every supported currency present in the provider response.
func (s *ExchangeRateService) storeRates(ctx context.Context, rates map[string]decimal.Decimal, provider string) error {
	now := time.Now()
	for _, currency := range domain.SupportedCurrencies {
		rate, ok := rates[currency]
		if !ok {
			continue
		}
		if !rate.IsPositive() {
			// A zero or negative rate would poison every reciprocal and
			// cross-currency division downstream.
			s.logger.Warn("Skipping non-positive rate from provider",
				slog.String("provider", provider),
				slog.String("currency", currency),
				slog.String("rate", rate.String()))
			continue
		}

		err := s.rateRepo.UpsertRate(ctx, domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: domain.BaseCurrency,
			ToCurrencyCode:   currency,
			Rate:             rate,
			Provider:         provider,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     refreshedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: refreshedBy,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to upsert rate for %s: %w", currency, err)
		}

		err = s.rateRepo.AppendRateHistory(ctx, domain.ExchangeRateHistory{
			HistoryID:        uuid.NewString(),
			FromCurrencyCode: domain.BaseCurrency,
			ToCurrencyCode:   currency,
			Rate:             rate,
			Provider:         provider,
			CreatedAt:        now,
		})
		if err != nil {
			return fmt.Errorf("failed to append rate history for %s: %w", currency, err)
		}

		key := cacheport.RateKey(domain.BaseCurrency, currency)
		if err := s.cache.SetRate(ctx, key, rate, s.cacheTTL); err != nil {
			// Cache is not authoritative; a failed warm just means the next
			// lookup falls back to the store.
			s.logger.Warn("Failed to cache rate",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// GetRate returns the exchange rate between two currencies, always pivoting
// through USD. Missing pairs surface as apperrors.ErrRateUnavailable.
func (s *ExchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return decimal.Decimal{}, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}

	if fromCode == domain.BaseCurrency {
		return s.lookupUSDRate(ctx, toCode)
	}

	if toCode == domain.BaseCurrency {
		rateFrom, err := s.lookupUSDRate(ctx, fromCode)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromInt(1).Div(rateFrom), nil
	}

	rateFrom, err := s.lookupUSDRate(ctx, fromCode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rateTo, err := s.lookupUSDRate(ctx, toCode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rateTo.Div(rateFrom), nil
}

// Convert converts amount between two currencies and rounds the result to two
// decimal places, half up. Same-currency conversions return the input amount
// untouched without any rate lookup.
func (s *ExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	if strings.EqualFold(fromCode, toCode) {
		return amount, nil
	}

	rate, err := s.GetRate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative monetary amounts handled here.
	return amount.Mul(rate).Round(2), nil
}

// ListRates returns the current USD-pivoted rate snapshot.
func (s *ExchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// GetRateHistory returns up to limit historical observations for a pair, newest first.
func (s *ExchangeRateService) GetRateHistory(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRateHistory, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = 50
	}

	history, err := s.rateRepo.ListRateHistory(ctx, fromCode, toCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rate history in service: %w", err)
	}
	if history == nil {
		return []domain.ExchangeRateHistory{}, nil
	}
	return history, nil
}

// lookupUSDRate resolves the USD->code rate, checking the cache before the
// durable store and populating the cache on a store hit so the next lookup
// within the TTL window skips the store entirely.
func (s *ExchangeRateService) lookupUSDRate(ctx context.Context, code string) (decimal.Decimal, error) {
	key := cacheport.RateKey(domain.BaseCurrency, code)

	cached, ok, err := s.cache.GetRate(ctx, key)
	if err != nil {
		// Treat a broken cache as a miss and keep serving from the store.
		s.logger.Warn("Rate cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	if ok {
		if cached.IsPositive() {
			return cached, nil
		}
		// A non-positive cached value is unusable for division; fall through
		// to the durable store as if it were a miss.
		s.logger.Warn("Ignoring non-positive cached rate",
			slog.String("key", key),
			slog.String("rate", cached.String()))
	}

	stored, err := s.rateRepo.FindRate(ctx, domain.BaseCurrency, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Exchange rate not found",
				slog.String("from", domain.BaseCurrency),
				slog.String("to", code))
			return decimal.Decimal{}, fmt.Errorf("%w: exchange rate for %s is unavailable", apperrors.ErrRateUnavailable, code)
		}
		return decimal.Decimal{}, fmt.Errorf("failed to read exchange rate for %s: %w", code, err)
	}

	if !stored.Rate.IsPositive() {
		s.logger.Error("Stored exchange rate is non-positive",
			slog.String("from", domain.BaseCurrency),
			slog.String("to", code),
			slog.String("rate", stored.Rate.String()))
		return decimal.Decimal{}, fmt.Errorf("%w: exchange rate for %s is unavailable", apperrors.ErrRateUnavailable, code)
	}

	if err := s.cache.SetRate(ctx, key, stored.Rate, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache rate",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return stored.Rate, nil
}
