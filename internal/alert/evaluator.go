package alert

import (
	"github.com/shopspring/decimal"

	"github.com/mvboucas12/stock-price-alerts/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Evaluate classifies one portfolio entry against the discount band. The
// rules run in a fixed priority order and exactly one outcome applies:
//
//  1. non-positive target          -> invalid target (checked before any division)
//  2. no quote                     -> price unavailable
//  3. current above target         -> above target
//  4. |deviation| below the band   -> below minimum threshold
//  5. |deviation| above the band   -> above maximum threshold
//  6. otherwise                    -> alert
//
// Both band boundaries are inclusive: a deviation magnitude equal to MinPct
// or MaxPct still alerts.
func Evaluate(entry domain.PortfolioEntry, quote *domain.Quote, thresholds domain.Thresholds) domain.EvaluatedInstrument {
	evaluated := domain.EvaluatedInstrument{
		Entry: entry,
		Quote: quote,
	}

	if entry.TargetPrice.LessThanOrEqual(decimal.Zero) {
		evaluated.Outcome = domain.OutcomeInvalidTarget
		return evaluated
	}

	if quote == nil {
		evaluated.Outcome = domain.OutcomePriceUnavailable
		return evaluated
	}

	evaluated.DeviationPct = quote.Price.Sub(entry.TargetPrice).
		Div(entry.TargetPrice).
		Mul(oneHundred)

	if quote.Price.GreaterThan(entry.TargetPrice) {
		evaluated.Outcome = domain.OutcomeAboveTarget
		return evaluated
	}

	magnitude := evaluated.DeviationPct.Neg()
	switch {
	case magnitude.LessThan(thresholds.MinPct):
		evaluated.Outcome = domain.OutcomeBelowMinThreshold
	case magnitude.GreaterThan(thresholds.MaxPct):
		evaluated.Outcome = domain.OutcomeAboveMaxThreshold
	default:
		evaluated.Outcome = domain.OutcomeAlert
	}

	return evaluated
}
