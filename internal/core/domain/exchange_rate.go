package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the current snapshot of a USD-pivoted rate. At most one row
// exists per (from, to) pair; the row is upserted on every successful provider
// refresh and never deleted.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"` // always BaseCurrency in practice
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Provider         string          `json:"provider"` // name of the source that supplied the rate
	AuditFields
}

// ExchangeRateHistory is one observation in the append-only rate audit trail.
// A history row is written alongside every ExchangeRate upsert and is never
// mutated or deleted.
type ExchangeRateHistory struct {
	HistoryID        string          `json:"historyID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Provider         string          `json:"provider"`
	CreatedAt        time.Time       `json:"createdAt"`
}
