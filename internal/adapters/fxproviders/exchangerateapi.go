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

const exchangeRateAPIName = "ExchangeRate-API"

// ExchangeRateAPI fetches latest USD rates from exchangerate-api.com. It is
// the fallback provider, tried when Open Exchange Rates fails.
type ExchangeRateAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewExchangeRateAPI creates the provider with a bounded request timeout.
func NewExchangeRateAPI(baseURL, apiKey string, timeout time.Duration) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider in logs, stored rates and history rows.
func (p *ExchangeRateAPI) Name() string {
	return exchangeRateAPIName
}

// FetchLatestUSDRates returns the latest USD-based rates. The API reports
// failures in-band via the result field, which is surfaced as an error here.
func (p *ExchangeRateAPI) FetchLatestUSDRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("exchangerate-api: api key missing")
	}

	url := fmt.Sprintf("%s/%s/latest/%s", p.baseURL, p.apiKey, domain.BaseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("exchangerate-api: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchangerate-api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchangerate-api: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Result          string                     `json:"result"`
		ErrorType       string                     `json:"error-type"`
		ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("exchangerate-api: decoding json: %w", err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("exchangerate-api: api error: %s", payload.ErrorType)
	}
	if len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("exchangerate-api: invalid response: no rates")
	}

	return payload.ConversionRates, nil
}
