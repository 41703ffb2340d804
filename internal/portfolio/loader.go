package portfolio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
	"github.com/mvboucas12/stock-price-alerts/pkg/logger"

	"go.uber.org/zap"
)

type csvRow struct {
	Symbol      string `csv:"symbol"`
	TargetPrice string `csv:"target_price"`
	Currency    string `csv:"currency"`
}

// Load reads the portfolio CSV. An unreadable file is fatal; a row with an
// unparseable or non-positive target price is kept with a zero target so the
// evaluator classifies it as invalid instead of the run aborting. Rows
// without a symbol are dropped.
func Load(path string) ([]domain.PortfolioEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio %s: %w", path, err)
	}
	defer f.Close()

	rows := []csvRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio %s: %w", path, err)
	}

	entries := make([]domain.PortfolioEntry, 0, len(rows))
	for _, row := range rows {
		symbol := strings.TrimSpace(row.Symbol)
		if symbol == "" {
			continue
		}

		target, err := decimal.NewFromString(strings.TrimSpace(row.TargetPrice))
		if err != nil {
			logger.Warn("invalid target price in portfolio",
				zap.String("symbol", symbol),
				zap.String("target_price", row.TargetPrice))
			target = decimal.Zero
		}

		entries = append(entries, domain.PortfolioEntry{
			Symbol:      symbol,
			TargetPrice: target,
			Currency:    domain.ParseCurrency(row.Currency),
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("portfolio %s has no usable rows", path)
	}

	return entries, nil
}
