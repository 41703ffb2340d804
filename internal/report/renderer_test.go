package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
)

func sampleThresholds() domain.Thresholds {
	return domain.Thresholds{
		MinPct: decimal.NewFromInt(3),
		MaxPct: decimal.NewFromInt(40),
	}
}

func sampleReport() domain.Report {
	return domain.Report{
		Groups: []domain.AlertGroup{
			{
				Currency: domain.CurrencyUSD,
				Alerts: []domain.EvaluatedInstrument{
					{
						Entry: domain.PortfolioEntry{
							Symbol:      "AAPL",
							TargetPrice: decimal.NewFromInt(150),
							Currency:    domain.CurrencyUSD,
						},
						Quote:        &domain.Quote{Symbol: "AAPL", Price: decimal.NewFromInt(140), Source: "yahoo"},
						DeviationPct: decimal.RequireFromString("-6.67"),
						Outcome:      domain.OutcomeAlert,
					},
				},
			},
			{
				Currency: domain.CurrencyBRL,
				Alerts: []domain.EvaluatedInstrument{
					{
						Entry: domain.PortfolioEntry{
							Symbol:      "VALE3.SA",
							TargetPrice: decimal.RequireFromString("1250.50"),
							Currency:    domain.CurrencyBRL,
						},
						Quote:        &domain.Quote{Symbol: "VALE3.SA", Price: decimal.NewFromInt(1000), Source: "brapi"},
						DeviationPct: decimal.RequireFromString("-20.03"),
						Outcome:      domain.OutcomeAlert,
					},
				},
			},
		},
		Ignored: []domain.IgnoredEntry{
			{Symbol: "PETR4.SA", Reason: "below minimum threshold"},
		},
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value    string
		currency domain.Currency
		want     string
	}{
		{"1234.5", domain.CurrencyBRL, "R$1,234.50"},
		{"140", domain.CurrencyUSD, "$140.00"},
		{"1234567.89", domain.CurrencyUSD, "$1,234,567.89"},
		{"0.99", domain.CurrencyBRL, "R$0.99"},
		{"29.9", domain.Currency("GBP"), "$29.90"},
	}

	for _, tt := range tests {
		got := FormatCurrency(decimal.RequireFromString(tt.value), tt.currency)
		assert.Equal(t, tt.want, got)
	}
}

func TestSeverityStyle(t *testing.T) {
	tests := []struct {
		magnitude string
		wantColor string
		wantArrow string
	}{
		{"25", "#b00020", "⬇⬇"},
		{"20", "#b00020", "⬇⬇"},
		{"12", "#d35400", "⬇"},
		{"10", "#d35400", "⬇"},
		{"5", "#e67e22", "⬇"},
	}

	for _, tt := range tests {
		color, arrow := severityStyle(decimal.RequireFromString(tt.magnitude))
		assert.Equal(t, tt.wantColor, color, "magnitude %s", tt.magnitude)
		assert.Equal(t, tt.wantArrow, arrow, "magnitude %s", tt.magnitude)
	}
}

func TestRenderReport(t *testing.T) {
	body, err := Render(sampleReport(), sampleThresholds())
	require.NoError(t, err)

	// Groups in first-seen order, each with its own table.
	usdIdx := strings.Index(body, "Ativos em USD")
	brlIdx := strings.Index(body, "Ativos em BRL")
	require.NotEqual(t, -1, usdIdx)
	require.NotEqual(t, -1, brlIdx)
	assert.Less(t, usdIdx, brlIdx)

	assert.Contains(t, body, `href="https://finance.yahoo.com/quote/AAPL"`)
	assert.Contains(t, body, "$150.00")
	assert.Contains(t, body, "$140.00")
	assert.Contains(t, body, "⬇ -6.67%")
	assert.Contains(t, body, "#e67e22")

	assert.Contains(t, body, "R$1,250.50")
	assert.Contains(t, body, "⬇⬇ -20.03%")
	assert.Contains(t, body, "#b00020")

	assert.Contains(t, body, "PETR4.SA - below minimum threshold")
	assert.Contains(t, body, "Critério: entre -3% e -40% em relação ao preço alvo.")
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(sampleReport(), sampleThresholds())
	require.NoError(t, err)

	second, err := Render(sampleReport(), sampleThresholds())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderEmptyReportKeepsIgnoredSection(t *testing.T) {
	rep := domain.Report{
		Ignored: []domain.IgnoredEntry{
			{Symbol: "AAPL", Reason: "above target price"},
		},
	}

	body, err := Render(rep, sampleThresholds())
	require.NoError(t, err)

	assert.NotContains(t, body, "<table")
	assert.Contains(t, body, "AAPL - above target price")
}
