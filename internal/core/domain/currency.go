package domain

// BaseCurrency is the pivot currency for all stored exchange rates. Rates are
// persisted exclusively as USD->X; every cross-currency conversion composes
// two USD-pivoted lookups.
const BaseCurrency = "USD"

// SupportedCurrencies is the fixed set of currencies the rate provider keeps
// fresh. Provider responses are filtered down to this list.
var SupportedCurrencies = []string{"NGN", "USD", "EUR", "GBP", "CAD", "AED", "SAR"}

// IsSupportedCurrency reports whether code is one of the supported currencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
