package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
)

// Subject is the fixed subject line of the alert email.
const Subject = "📉 Alerta diário de preços"

var (
	severeDeviation   = decimal.NewFromInt(20)
	moderateDeviation = decimal.NewFromInt(10)
)

// severityStyle maps deviation magnitude to the presentation tier:
// >=20% severe, >=10% moderate, otherwise mild. Presentation only.
func severityStyle(magnitude decimal.Decimal) (color, arrow string) {
	switch {
	case magnitude.GreaterThanOrEqual(severeDeviation):
		return "#b00020", "⬇⬇"
	case magnitude.GreaterThanOrEqual(moderateDeviation):
		return "#d35400", "⬇"
	default:
		return "#e67e22", "⬇"
	}
}

func yahooLink(symbol string) string {
	return "https://finance.yahoo.com/quote/" + symbol
}

// FormatCurrency renders a price with the currency prefix, two decimal
// places and thousands separators ("R$1,234.56").
func FormatCurrency(value decimal.Decimal, currency domain.Currency) string {
	return currency.Symbol() + groupThousands(value.StringFixed(2))
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	return b.String()
}

type alertRow struct {
	Symbol    string
	Link      string
	Target    string
	Current   string
	Deviation string
	Color     string
	Arrow     string
}

type groupView struct {
	Currency string
	Rows     []alertRow
}

type reportView struct {
	Groups  []groupView
	Ignored []domain.IgnoredEntry
	MinPct  string
	MaxPct  string
}

var emailTemplate = template.Must(template.New("report").Parse(`<h2 style="font-family:Arial;margin-bottom:10px;">
📉 Alerta diário de preços
</h2>

<p style="font-family:Arial;font-size:13px;color:#555;">
Ativos abaixo do preço alvo conforme critério definido.
Clique no ticker para abrir no Yahoo Finance.
</p>
{{range .Groups}}
<h3 style="font-family:Arial;margin-bottom:6px;">Ativos em {{.Currency}}</h3>

<table style="font-family:Arial;border-collapse:collapse;width:100%;max-width:740px;font-size:14px;">
  <tr style="background-color:#1f2933;color:white;">
    <th align="left" style="padding:8px;">Ativo</th>
    <th align="right" style="padding:8px;">Preço Alvo</th>
    <th align="right" style="padding:8px;">Preço Atual</th>
    <th align="right" style="padding:8px;">Variação</th>
  </tr>
{{- range .Rows}}
  <tr style="border-bottom:1px solid #e5e7eb;">
    <td style="padding:8px;">
      <a href="{{.Link}}" target="_blank" style="color:#2563eb;text-decoration:none;font-weight:bold;">{{.Symbol}}</a>
    </td>
    <td align="right" style="padding:8px;">{{.Target}}</td>
    <td align="right" style="padding:8px;">{{.Current}}</td>
    <td align="right" style="padding:8px;color:{{.Color}};"><b>{{.Arrow}} {{.Deviation}}%</b></td>
  </tr>
{{- end}}
</table>
{{end}}
{{- if .Ignored}}
<h3 style="font-family:Arial;margin-bottom:6px;">Ignorados</h3>
<ul style="font-family:Arial;font-size:13px;color:#555;">
{{- range .Ignored}}
  <li>{{.Symbol}} - {{.Reason}}</li>
{{- end}}
</ul>
{{end}}
<p style="font-family:Arial;font-size:12px;color:#777;margin-top:12px;">
Critério: entre -{{.MinPct}}% e -{{.MaxPct}}% em relação ao preço alvo.
</p>
`))

// Render produces the HTML email body: one table per currency group, the
// ignored accounting, and a footer restating the configured band. Pure and
// deterministic: identical input yields a byte-identical document.
func Render(rep domain.Report, thresholds domain.Thresholds) (string, error) {
	view := reportView{
		Ignored: rep.Ignored,
		MinPct:  thresholds.MinPct.String(),
		MaxPct:  thresholds.MaxPct.String(),
	}

	for _, group := range rep.Groups {
		gv := groupView{Currency: string(group.Currency)}
		for _, instrument := range group.Alerts {
			color, arrow := severityStyle(instrument.DeviationPct.Neg())
			gv.Rows = append(gv.Rows, alertRow{
				Symbol:    instrument.Entry.Symbol,
				Link:      yahooLink(instrument.Entry.Symbol),
				Target:    FormatCurrency(instrument.Entry.TargetPrice, instrument.Entry.Currency),
				Current:   FormatCurrency(instrument.Quote.Price, instrument.Entry.Currency),
				Deviation: instrument.DeviationPct.StringFixed(2),
				Color:     color,
				Arrow:     arrow,
			})
		}
		view.Groups = append(view.Groups, gv)
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	return buf.String(), nil
}
