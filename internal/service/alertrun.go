package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mvboucas12/stock-price-alerts/internal/alert"
	"github.com/mvboucas12/stock-price-alerts/internal/domain"
	"github.com/mvboucas12/stock-price-alerts/internal/notify"
	"github.com/mvboucas12/stock-price-alerts/internal/pricing"
	"github.com/mvboucas12/stock-price-alerts/internal/report"
	"github.com/mvboucas12/stock-price-alerts/pkg/logger"
	"github.com/mvboucas12/stock-price-alerts/pkg/metrics"
)

// AlertRunService drives one run of the pipeline:
// resolve -> evaluate -> aggregate -> render -> notify.
type AlertRunService struct {
	resolver   *pricing.Resolver
	notifier   notify.Notifier
	thresholds domain.Thresholds
	recipient  string
	workers    int
}

func NewAlertRunService(resolver *pricing.Resolver, notifier notify.Notifier, thresholds domain.Thresholds, recipient string, workers int) *AlertRunService {
	return &AlertRunService{
		resolver:   resolver,
		notifier:   notifier,
		thresholds: thresholds,
		recipient:  recipient,
		workers:    workers,
	}
}

// RunSummary is what the CLI prints after a run.
type RunSummary struct {
	Evaluated int
	Alerts    int
	Ignored   int
	EmailSent bool
}

// Evaluate resolves prices for every entry and classifies each one.
// Entries with an invalid target never hit the network. Per-symbol failures
// are contained as outcomes; this method only fails on context errors.
func (s *AlertRunService) Evaluate(ctx context.Context, entries []domain.PortfolioEntry) []domain.EvaluatedInstrument {
	// Only resolve entries that can actually be evaluated against a target.
	resolvable := make([]int, 0, len(entries))
	symbols := make([]string, 0, len(entries))
	for i, entry := range entries {
		if entry.TargetPrice.IsPositive() {
			resolvable = append(resolvable, i)
			symbols = append(symbols, entry.Symbol)
		}
	}

	quotes := make([]*domain.Quote, len(entries))
	resolved, _ := s.resolver.ResolveAll(ctx, symbols, s.workers)
	for n, i := range resolvable {
		quotes[i] = resolved[n]
	}

	evaluated := make([]domain.EvaluatedInstrument, len(entries))
	for i, entry := range entries {
		evaluated[i] = alert.Evaluate(entry, quotes[i], s.thresholds)
		metrics.RecordOutcome(string(evaluated[i].Outcome))
		s.logInstrument(evaluated[i])
	}

	return evaluated
}

func (s *AlertRunService) logInstrument(instrument domain.EvaluatedInstrument) {
	log := logger.WithSymbol(instrument.Entry.Symbol)

	if instrument.Quote == nil {
		log.Info("instrument evaluated",
			zap.String("outcome", instrument.Outcome.Reason()))
		return
	}

	log.Info("instrument evaluated",
		zap.String("target", instrument.Entry.TargetPrice.StringFixed(2)),
		zap.String("current", instrument.Quote.Price.StringFixed(2)),
		zap.String("deviation_pct", instrument.DeviationPct.StringFixed(2)),
		zap.String("source", instrument.Quote.Source),
		zap.String("outcome", instrument.Outcome.Reason()))
}

// Run executes the whole pipeline and delivers the report. Zero alerts is a
// legitimate terminal state: nothing is sent and the run still succeeds.
// A delivery failure is fatal — a partial or silently dropped report is
// worse than a failed run.
func (s *AlertRunService) Run(ctx context.Context, entries []domain.PortfolioEntry) (*RunSummary, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.RunDuration)

	evaluated := s.Evaluate(ctx, entries)
	rep := alert.Aggregate(evaluated)

	summary := &RunSummary{
		Evaluated: len(evaluated),
		Alerts:    rep.AlertCount(),
		Ignored:   len(rep.Ignored),
	}
	metrics.AlertsGenerated.Set(float64(summary.Alerts))

	if !rep.HasAlerts() {
		logger.Info("no instruments within alert band, skipping email",
			zap.Int("evaluated", summary.Evaluated),
			zap.Int("ignored", summary.Ignored))
		return summary, nil
	}

	if s.notifier == nil || s.recipient == "" {
		return summary, fmt.Errorf("email delivery not configured: recipient and sender are required")
	}

	body, err := report.Render(rep, s.thresholds)
	if err != nil {
		return summary, err
	}

	logger.Info("sending alert email",
		zap.Int("alerts", summary.Alerts),
		zap.Strings("symbols", alert.AlertSymbols(rep)),
		zap.String("recipient", s.recipient))

	if err := s.notifier.Send(ctx, s.recipient, report.Subject, body); err != nil {
		metrics.RecordEmail("error")
		return summary, fmt.Errorf("failed to deliver report: %w", err)
	}

	metrics.RecordEmail("ok")
	summary.EmailSent = true

	return summary, nil
}

// Report evaluates and aggregates without sending. Used by the check and
// preview commands.
func (s *AlertRunService) Report(ctx context.Context, entries []domain.PortfolioEntry) domain.Report {
	return alert.Aggregate(s.Evaluate(ctx, entries))
}
