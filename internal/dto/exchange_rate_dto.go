package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// ConvertRequest defines the query parameters for a currency conversion.
type ConvertRequest struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"required,len=3"`
}

// Normalize uppercases the currency codes so lowercase query params behave
// the same as the path-param routes.
func (r *ConvertRequest) Normalize() {
	r.From = strings.ToUpper(r.From)
	r.To = strings.ToUpper(r.To)
}

// ConvertResponse is the result of a currency conversion.
type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
}

// RateHistoryRequest defines the query parameters for rate history lookups.
type RateHistoryRequest struct {
	From  string `form:"from" binding:"required,len=3"`
	To    string `form:"to" binding:"required,len=3"`
	Limit int    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
}

// Normalize uppercases the currency codes before the service lookup.
func (r *RateHistoryRequest) Normalize() {
	r.From = strings.ToUpper(r.From)
	r.To = strings.ToUpper(r.To)
}

// ExchangeRateResponse defines the structure for API responses containing current rate details.
type ExchangeRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Provider         string          `json:"provider"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ExchangeRateHistoryResponse defines the structure for one historical rate observation.
type ExchangeRateHistoryResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Provider         string          `json:"provider"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		Provider:         rate.Provider,
		UpdatedAt:        rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ToExchangeRateHistoryResponse converts a domain history row to its DTO.
func ToExchangeRateHistoryResponse(h *domain.ExchangeRateHistory) ExchangeRateHistoryResponse {
	return ExchangeRateHistoryResponse{
		FromCurrencyCode: h.FromCurrencyCode,
		ToCurrencyCode:   h.ToCurrencyCode,
		Rate:             h.Rate,
		Provider:         h.Provider,
		CreatedAt:        h.CreatedAt,
	}
}

// ToListExchangeRateHistoryResponse converts history rows to response DTOs.
func ToListExchangeRateHistoryResponse(history []domain.ExchangeRateHistory) []ExchangeRateHistoryResponse {
	responses := make([]ExchangeRateHistoryResponse, len(history))
	for i := range history {
		responses[i] = ToExchangeRateHistoryResponse(&history[i])
	}
	return responses
}
