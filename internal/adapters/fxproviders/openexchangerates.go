// Package fxproviders contains the concrete exchange-rate sources. Each
// provider keys its JSON payload differently; the adapters normalize all of
// them into a plain currency->rate map relative to USD.
package fxproviders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

const openExchangeRatesName = "Open Exchange Rates"

// OpenExchangeRates fetches latest USD rates from openexchangerates.org.
type OpenExchangeRates struct {
	baseURL string
	appID   string
	client  *http.Client
}

// NewOpenExchangeRates creates the provider. The client timeout bounds every
// request so a hung provider cannot stall a refresh cycle.
func NewOpenExchangeRates(baseURL, appID string, timeout time.Duration) *OpenExchangeRates {
	return &OpenExchangeRates{
		baseURL: baseURL,
		appID:   appID,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider in logs, stored rates and history rows.
func (p *OpenExchangeRates) Name() string {
	return openExchangeRatesName
}

// FetchLatestUSDRates returns the latest USD-based rates. A missing app ID is
// reported as an error so the refresh loop falls through to the next provider.
func (p *OpenExchangeRates) FetchLatestUSDRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	if p.appID == "" {
		return nil, fmt.Errorf("open exchange rates: app id missing")
	}

	url := fmt.Sprintf("%s/latest.json?app_id=%s&base=%s", p.baseURL, p.appID, domain.BaseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("open exchange rates: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open exchange rates: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Base  string                     `json:"base"`
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("open exchange rates: decoding json: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("open exchange rates: invalid response: no rates")
	}

	return payload.Rates, nil
}
