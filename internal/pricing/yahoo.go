package pricing

import (
	"context"
	"fmt"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// YahooProvider is the primary quote source. It queries Yahoo Finance
// through finance-go and accepts symbols as-is, including the ".SA" suffix
// for B3 listings.
type YahooProvider struct{}

func NewYahooProvider() *YahooProvider {
	return &YahooProvider{}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func (p *YahooProvider) Fetch(ctx context.Context, symbol string) (decimal.Decimal, error) {
	type result struct {
		price decimal.Decimal
		err   error
	}

	// finance-go has no context support, so the call runs in a goroutine and
	// the wait is bounded by ctx. The channel is buffered so a late result
	// never blocks the abandoned goroutine.
	ch := make(chan result, 1)
	go func() {
		q, err := quote.Get(symbol)
		if err != nil {
			ch <- result{err: err}
			return
		}
		if q == nil {
			ch <- result{err: fmt.Errorf("empty quote response")}
			return
		}
		if q.RegularMarketPrice <= 0 {
			ch <- result{err: fmt.Errorf("no market price in response")}
			return
		}
		ch <- result{price: decimal.NewFromFloat(q.RegularMarketPrice)}
	}()

	select {
	case <-ctx.Done():
		return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: ctx.Err()}
	case res := <-ch:
		if res.err != nil {
			return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: res.err}
		}
		return res.price, nil
	}
}
