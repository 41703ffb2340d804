package alert

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
)

func alertAt(symbol string, currency domain.Currency, deviation string) domain.EvaluatedInstrument {
	return domain.EvaluatedInstrument{
		Entry: domain.PortfolioEntry{
			Symbol:      symbol,
			TargetPrice: decimal.NewFromInt(100),
			Currency:    currency,
		},
		Quote:        &domain.Quote{Symbol: symbol, Price: decimal.NewFromInt(90), Source: "yahoo"},
		DeviationPct: decimal.RequireFromString(deviation),
		Outcome:      domain.OutcomeAlert,
	}
}

func ignoredAs(symbol string, outcome domain.Outcome) domain.EvaluatedInstrument {
	return domain.EvaluatedInstrument{
		Entry:   domain.PortfolioEntry{Symbol: symbol, TargetPrice: decimal.NewFromInt(100), Currency: domain.CurrencyUSD},
		Outcome: outcome,
	}
}

func TestAggregateSortsByDeviation(t *testing.T) {
	rep := Aggregate([]domain.EvaluatedInstrument{
		alertAt("A", domain.CurrencyUSD, "-5"),
		alertAt("B", domain.CurrencyUSD, "-30"),
		alertAt("C", domain.CurrencyUSD, "-12"),
	})

	require.Len(t, rep.Groups, 1)
	require.Len(t, rep.Groups[0].Alerts, 3)
	assert.Equal(t, "B", rep.Groups[0].Alerts[0].Entry.Symbol)
	assert.Equal(t, "C", rep.Groups[0].Alerts[1].Entry.Symbol)
	assert.Equal(t, "A", rep.Groups[0].Alerts[2].Entry.Symbol)
}

func TestAggregateSortIsStable(t *testing.T) {
	rep := Aggregate([]domain.EvaluatedInstrument{
		alertAt("FIRST", domain.CurrencyUSD, "-10"),
		alertAt("SECOND", domain.CurrencyUSD, "-10"),
	})

	require.Len(t, rep.Groups, 1)
	assert.Equal(t, "FIRST", rep.Groups[0].Alerts[0].Entry.Symbol)
	assert.Equal(t, "SECOND", rep.Groups[0].Alerts[1].Entry.Symbol)
}

func TestAggregateGroupsByFirstSeenCurrency(t *testing.T) {
	rep := Aggregate([]domain.EvaluatedInstrument{
		alertAt("PETR4.SA", domain.CurrencyBRL, "-6"),
		alertAt("AAPL", domain.CurrencyUSD, "-8"),
		alertAt("VALE3.SA", domain.CurrencyBRL, "-4"),
	})

	require.Len(t, rep.Groups, 2)
	assert.Equal(t, domain.CurrencyBRL, rep.Groups[0].Currency)
	assert.Equal(t, domain.CurrencyUSD, rep.Groups[1].Currency)
	require.Len(t, rep.Groups[0].Alerts, 2)
	require.Len(t, rep.Groups[1].Alerts, 1)
}

func TestAggregateRecordsEveryIgnoredInstrument(t *testing.T) {
	rep := Aggregate([]domain.EvaluatedInstrument{
		ignoredAs("AAA", domain.OutcomeAboveTarget),
		alertAt("BBB", domain.CurrencyUSD, "-5"),
		ignoredAs("CCC", domain.OutcomePriceUnavailable),
		ignoredAs("DDD", domain.OutcomeBelowMinThreshold),
	})

	require.Len(t, rep.Ignored, 3)
	assert.Equal(t, domain.IgnoredEntry{Symbol: "AAA", Reason: "above target price"}, rep.Ignored[0])
	assert.Equal(t, domain.IgnoredEntry{Symbol: "CCC", Reason: "price unavailable"}, rep.Ignored[1])
	assert.Equal(t, domain.IgnoredEntry{Symbol: "DDD", Reason: "below minimum threshold"}, rep.Ignored[2])
}

func TestAggregateEmptyReport(t *testing.T) {
	rep := Aggregate([]domain.EvaluatedInstrument{
		ignoredAs("AAA", domain.OutcomeAboveTarget),
	})

	assert.False(t, rep.HasAlerts())
	assert.Equal(t, 0, rep.AlertCount())
	assert.Len(t, rep.Ignored, 1)
}

func TestAlertSymbols(t *testing.T) {
	rep := Aggregate([]domain.EvaluatedInstrument{
		alertAt("PETR4.SA", domain.CurrencyBRL, "-6"),
		alertAt("AAPL", domain.CurrencyUSD, "-8"),
	})

	assert.Equal(t, []string{"PETR4.SA", "AAPL"}, AlertSymbols(rep))
}
