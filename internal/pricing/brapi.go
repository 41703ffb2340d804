package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// BrapiProvider is the fallback source for B3 listings, backed by the
// brapi.dev quote API. brapi uses bare B3 tickers, so the Yahoo-style ".SA"
// suffix is stripped before querying.
type BrapiProvider struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewBrapiProvider(baseURL, token string, httpClient *http.Client) *BrapiProvider {
	if baseURL == "" {
		baseURL = "https://brapi.dev/api"
	}
	return &BrapiProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (p *BrapiProvider) Name() string { return "brapi" }

type brapiQuoteResponse struct {
	Results []struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"results"`
}

func (p *BrapiProvider) Fetch(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ticker := strings.TrimSuffix(strings.ToUpper(symbol), ".SA")
	url := fmt.Sprintf("%s/quote/%s", p.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, &FetchError{
			Provider: p.Name(),
			Symbol:   symbol,
			Err:      fmt.Errorf("status code %d from %s", resp.StatusCode, url),
		}
	}

	var payload brapiQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: fmt.Errorf("invalid response body: %w", err)}
	}

	if len(payload.Results) == 0 {
		return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: fmt.Errorf("no results for %s", ticker)}
	}

	price := payload.Results[0].RegularMarketPrice
	if price <= 0 {
		return decimal.Zero, &FetchError{Provider: p.Name(), Symbol: symbol, Err: fmt.Errorf("no market price for %s", ticker)}
	}

	return decimal.NewFromFloat(price), nil
}
