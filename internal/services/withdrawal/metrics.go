package withdrawal

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// MetricsCollector records withdrawal metrics.
type MetricsCollector interface {
	RecordWithdrawal(status, kind string)
	RecordDuration(kind string, d time.Duration)
	RecordAmount(kind string, amount decimal.Decimal)
}

// PrometheusMetrics is the production MetricsCollector. Construct it
// once per process; the collectors register with the default registry.
type PrometheusMetrics struct {
	withdrawals *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	amountCents *prometheus.CounterVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		withdrawals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "withdrawal_total",
			Help: "Total withdrawals by status and kind.",
		}, []string{"status", "type"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "withdrawal_duration_seconds",
			Help:    "Withdrawal execution duration by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		amountCents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "withdrawal_amount_cents_total",
			Help: "Total withdrawn amount in cents by kind.",
		}, []string{"type"}),
	}
}

func (m *PrometheusMetrics) RecordWithdrawal(status, kind string) {
	m.withdrawals.WithLabelValues(status, kind).Inc()
}

func (m *PrometheusMetrics) RecordDuration(kind string, d time.Duration) {
	m.duration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordAmount(kind string, amount decimal.Decimal) {
	cents, _ := amount.Mul(decimal.NewFromInt(100)).Float64()
	m.amountCents.WithLabelValues(kind).Add(cents)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordWithdrawal(string, string)      {}
func (n *NoopMetricsCollector) RecordDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordAmount(string, decimal.Decimal) {}
