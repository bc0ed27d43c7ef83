package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

const namespace = "goaccounts"

// Metrics holds the Prometheus metrics of the current-account service. It
// implements usecase.Recorder.
type Metrics struct {
	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec
	ReportMovements  *prometheus.HistogramVec

	// Rollup metrics
	RollupFailures *prometheus.CounterVec

	// Statement metrics
	Statements     *prometheus.CounterVec
	PublishRetries prometheus.Counter

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates the metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ReportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Total current-account reports built by entity kind and outcome",
			},
			[]string{"kind", "status"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Duration of current-account report generation",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"kind"},
		),
		ReportMovements: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_movements",
				Help:      "Number of movements returned per report",
				Buckets:   []float64{0, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"kind"},
		),
		RollupFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rollup_failures_total",
				Help:      "Entities left out of a rollup because their report failed",
			},
			[]string{"kind"},
		),
		Statements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statements_total",
				Help:      "Account statement requests by outcome",
			},
			[]string{"status"},
		),
		PublishRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statement_publish_retries_total",
			Help:      "Retried statement publish attempts",
		}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}
}

var _ usecase.Recorder = (*Metrics)(nil)

// ObserveReport records one report build.
func (m *Metrics) ObserveReport(kind domain.EntityKind, status string, duration time.Duration, movements int) {
	m.ReportsGenerated.WithLabelValues(string(kind), status).Inc()
	m.ReportDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
	if status == usecase.StatusSuccess {
		m.ReportMovements.WithLabelValues(string(kind)).Observe(float64(movements))
	}
}

// IncRollupFailure counts an entity skipped by a rollup.
func (m *Metrics) IncRollupFailure(kind domain.EntityKind) {
	m.RollupFailures.WithLabelValues(string(kind)).Inc()
}

// IncStatement counts a statement request outcome.
func (m *Metrics) IncStatement(status string) {
	m.Statements.WithLabelValues(status).Inc()
}

// IncPublishRetry counts a retried publish attempt.
func (m *Metrics) IncPublishRetry() {
	m.PublishRetries.Inc()
}

// IncRateLimitHit counts a rejected request.
func (m *Metrics) IncRateLimitHit() {
	m.RateLimitHits.Inc()
}
