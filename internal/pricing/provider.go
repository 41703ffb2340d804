package pricing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned by the resolver once every configured provider
// has failed for a symbol.
var ErrUnavailable = errors.New("price unavailable from all providers")

// Provider wraps one external quote source. Implementations must convert
// every provider-specific failure (timeout, bad payload, missing field) into
// a *FetchError instead of panicking: one provider outage must never abort
// the run.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// FetchError is a single provider's failure for a single symbol.
type FetchError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: failed to fetch price for %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options carries the provider construction knobs from config.
type Options struct {
	Timeout      time.Duration
	BrapiBaseURL string
	BrapiToken   string
}

// FromPriority builds the adapter chain in the configured order. Names are
// matched case-sensitively against the registered providers.
func FromPriority(names []string, opts Options) ([]Provider, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}

	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		switch name {
		case "yahoo":
			providers = append(providers, NewYahooProvider())
		case "brapi":
			providers = append(providers, NewBrapiProvider(opts.BrapiBaseURL, opts.BrapiToken, httpClient))
		default:
			return nil, fmt.Errorf("unknown price provider %q", name)
		}
	}

	if len(providers) == 0 {
		return nil, errors.New("no price providers configured")
	}

	return providers, nil
}
