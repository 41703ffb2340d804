package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
	"github.com/mvboucas12/stock-price-alerts/pkg/logger"
	"github.com/mvboucas12/stock-price-alerts/pkg/metrics"
)

// Resolver tries providers in priority order and returns the first
// successful quote with its provenance. Each provider gets a single
// attempt per symbol per run, bounded by the configured timeout.
type Resolver struct {
	providers []Provider
	timeout   time.Duration
}

func NewResolver(providers []Provider, timeout time.Duration) *Resolver {
	return &Resolver{
		providers: providers,
		timeout:   timeout,
	}
}

// Resolve short-circuits on the first provider that answers: once a
// higher-priority source succeeds, the remaining ones are never queried.
// When every provider fails the error wraps ErrUnavailable.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (*domain.Quote, error) {
	for _, provider := range r.providers {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		timer := metrics.NewTimer()
		price, err := provider.Fetch(callCtx, symbol)
		cancel()

		if err != nil {
			metrics.RecordQuoteLookup(provider.Name(), "error", timer.Elapsed())
			logger.Warn("provider lookup failed",
				zap.String("symbol", symbol),
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}

		metrics.RecordQuoteLookup(provider.Name(), "ok", timer.Elapsed())
		return &domain.Quote{
			Symbol: symbol,
			Price:  price,
			Source: provider.Name(),
		}, nil
	}

	return nil, fmt.Errorf("%s: %w", symbol, ErrUnavailable)
}

// ResolveAll resolves every symbol with at most workers concurrent lookups.
// Results and errors are index-aligned with symbols, so downstream ordering
// depends only on input order, never on completion order.
func (r *Resolver) ResolveAll(ctx context.Context, symbols []string, workers int) ([]*domain.Quote, []error) {
	if workers < 1 {
		workers = 1
	}

	quotes := make([]*domain.Quote, len(symbols))
	errs := make([]error, len(symbols))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			quotes[i], errs[i] = r.Resolve(ctx, symbol)
		}(i, symbol)
	}

	wg.Wait()

	return quotes, errs
}
