package alert

import (
	"sort"

	"github.com/samber/lo"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
)

// Aggregate partitions evaluated instruments into currency-keyed alert
// groups and an ignored list. Group order follows the first appearance of
// each currency among the alerts; within a group alerts are sorted most
// negative deviation first, with input order breaking ties. Every
// non-alerting instrument is recorded with its reason, never dropped.
func Aggregate(evaluated []domain.EvaluatedInstrument) domain.Report {
	report := domain.Report{}

	groupIndex := map[domain.Currency]int{}
	for _, instrument := range evaluated {
		if instrument.Outcome != domain.OutcomeAlert {
			report.Ignored = append(report.Ignored, domain.IgnoredEntry{
				Symbol: instrument.Entry.Symbol,
				Reason: instrument.Outcome.Reason(),
			})
			continue
		}

		currency := instrument.Entry.Currency
		idx, ok := groupIndex[currency]
		if !ok {
			idx = len(report.Groups)
			groupIndex[currency] = idx
			report.Groups = append(report.Groups, domain.AlertGroup{Currency: currency})
		}
		report.Groups[idx].Alerts = append(report.Groups[idx].Alerts, instrument)
	}

	for i := range report.Groups {
		alerts := report.Groups[i].Alerts
		sort.SliceStable(alerts, func(a, b int) bool {
			return alerts[a].DeviationPct.LessThan(alerts[b].DeviationPct)
		})
	}

	return report
}

// AlertSymbols lists the alerting symbols in report order, used for the
// console trail and the email subject line.
func AlertSymbols(report domain.Report) []string {
	return lo.FlatMap(report.Groups, func(group domain.AlertGroup, _ int) []string {
		return lo.Map(group.Alerts, func(instrument domain.EvaluatedInstrument, _ int) string {
			return instrument.Entry.Symbol
		})
	})
}
