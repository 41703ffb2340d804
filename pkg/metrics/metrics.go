package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	QuoteLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_lookups_total",
		Help: "Total number of provider quote lookups",
	}, []string{"provider", "status"})

	QuoteLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_lookup_duration_seconds",
		Help:    "Duration of provider quote lookups",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	InstrumentsEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instruments_evaluated_total",
		Help: "Total number of instruments classified, by outcome",
	}, []string{"outcome"})

	AlertsGenerated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "alerts_generated",
		Help: "Number of alerts produced by the last run",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "run_duration_seconds",
		Help:    "End to end duration of an alert run",
		Buckets: prometheus.DefBuckets,
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Total number of report emails sent",
	}, []string{"status"})
)

func RecordQuoteLookup(provider, status string, duration time.Duration) {
	QuoteLookups.WithLabelValues(provider, status).Inc()
	QuoteLookupDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func RecordOutcome(outcome string) {
	InstrumentsEvaluated.WithLabelValues(outcome).Inc()
}

func RecordEmail(status string) {
	EmailsSent.WithLabelValues(status).Inc()
}

// Push sends the default registry to a Pushgateway. A scheduled batch job
// has no scrape endpoint, so metrics are pushed once at the end of each run.
// A failed push is not fatal to the run.
func Push(gatewayURL string) error {
	if gatewayURL == "" {
		return nil
	}
	return push.New(gatewayURL, "stock_price_alerts").
		Gatherer(prometheus.DefaultGatherer).
		Push()
}

type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
	}
}

func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
