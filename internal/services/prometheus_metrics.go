package services

import (
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	rowsNormalized    prometheus.Counter
	rowsRejected      *prometheus.CounterVec
	normalizeDuration prometheus.Histogram
	comparisonsTotal  *prometheus.CounterVec
	lookupsTotal      *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		rowsNormalized: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "travel_history_rows_normalized_total",
				Help: "Total number of travel-history rows normalized into transactions",
			},
		),
		rowsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travel_history_rows_rejected_total",
				Help: "Total number of travel-history rows rejected during normalization",
			},
			[]string{"reason"},
		),
		normalizeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "travel_history_normalize_duration_milliseconds",
				Help:    "Normalization duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		comparisonsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subscription_comparisons_total",
				Help: "Total number of subscription comparisons computed",
			},
			[]string{"current"},
		),
		lookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ns_lookups_total",
				Help: "Total number of NS price/station lookups by outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}

func (m *PrometheusMetrics) RecordRowsNormalized(count int) {
	m.rowsNormalized.Add(float64(count))
}

func (m *PrometheusMetrics) RecordRowRejected(reason string) {
	m.rowsRejected.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) RecordNormalizeDuration(duration time.Duration) {
	m.normalizeDuration.Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordComparison(current models.SubscriptionType) {
	m.comparisonsTotal.WithLabelValues(string(current)).Inc()
}

func (m *PrometheusMetrics) RecordLookup(kind, outcome string) {
	m.lookupsTotal.WithLabelValues(kind, outcome).Inc()
}

// NoopMetrics is a MetricsRecorderInterface that records nothing, for tests.
type NoopMetrics struct{}

func (NoopMetrics) RecordRowsNormalized(count int) {}

func (NoopMetrics) RecordRowRejected(reason string) {}

func (NoopMetrics) RecordNormalizeDuration(duration time.Duration) {}

func (NoopMetrics) RecordComparison(current models.SubscriptionType) {}

func (NoopMetrics) RecordLookup(kind, outcome string) {}
