package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency normalizes a raw currency column value. Unknown values are
// kept as-is (upper-cased) and rendered with the default "$" prefix.
func ParseCurrency(raw string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(raw)))
}

// Symbol returns the currency prefix used when formatting prices.
func (c Currency) Symbol() string {
	if c == CurrencyBRL {
		return "R$"
	}
	return "$"
}

// PortfolioEntry is one row of the portfolio CSV. Immutable after load.
type PortfolioEntry struct {
	Symbol      string
	TargetPrice decimal.Decimal
	Currency    Currency
}
