package domain

import "github.com/shopspring/decimal"

// Outcome is the mutually-exclusive classification assigned to each
// portfolio entry on every run.
type Outcome string

const (
	OutcomeAlert             Outcome = "alert"
	OutcomeAboveTarget       Outcome = "above_target"
	OutcomeBelowMinThreshold Outcome = "below_min_threshold"
	OutcomeAboveMaxThreshold Outcome = "above_max_threshold"
	OutcomePriceUnavailable  Outcome = "price_unavailable"
	OutcomeInvalidTarget     Outcome = "invalid_target"
)

// Reason is the human-readable text shown in the ignored section of the
// report and in the console trail.
func (o Outcome) Reason() string {
	switch o {
	case OutcomeAboveTarget:
		return "above target price"
	case OutcomeBelowMinThreshold:
		return "below minimum threshold"
	case OutcomeAboveMaxThreshold:
		return "above maximum threshold"
	case OutcomePriceUnavailable:
		return "price unavailable"
	case OutcomeInvalidTarget:
		return "invalid target price"
	}
	return string(o)
}

// EvaluatedInstrument is one portfolio entry after resolution and
// classification. Quote is nil when no provider could supply a price and
// DeviationPct is only meaningful when Quote is set.
type EvaluatedInstrument struct {
	Entry        PortfolioEntry
	Quote        *Quote
	DeviationPct decimal.Decimal
	Outcome      Outcome
}

// AlertGroup holds the alerts of one currency, ordered most negative
// deviation first.
type AlertGroup struct {
	Currency Currency
	Alerts   []EvaluatedInstrument
}

// IgnoredEntry records a non-alerting instrument and why it was skipped.
type IgnoredEntry struct {
	Symbol string
	Reason string
}

// Report is the aggregated result of a run. Groups follow the first-seen
// currency order among alerts; Ignored preserves portfolio order.
type Report struct {
	Groups  []AlertGroup
	Ignored []IgnoredEntry
}

// HasAlerts reports whether anything crossed the alert band. An empty
// report is a valid terminal state and suppresses delivery.
func (r Report) HasAlerts() bool {
	return len(r.Groups) > 0
}

// AlertCount is the total number of alerting instruments across groups.
func (r Report) AlertCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Alerts)
	}
	return n
}

// Thresholds is the configured discount band, threaded explicitly through
// the evaluator and the renderer.
type Thresholds struct {
	MinPct decimal.Decimal
	MaxPct decimal.Decimal
}
