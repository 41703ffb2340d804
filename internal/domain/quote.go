package domain

import "github.com/shopspring/decimal"

// Quote is a successfully resolved price, tagged with the provider that
// supplied it.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
	Source string
}
