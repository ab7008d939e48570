// Package importmetrics defines the metrics surface of the import module and
// its Prometheus-backed implementation.
package importmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records operational metrics for import operations. Service
// code treats a nil ImportMetrics as "metrics disabled".
type ImportMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordRowsProcessed(ctx context.Context, outcome string, count int)
	RecordCommitOutcome(ctx context.Context, status string)
}

// PrometheusMetrics implements ImportMetrics on a Prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	rows      *prometheus.CounterVec
	commits   *prometheus.CounterVec
}

// NewPrometheusMetrics creates and registers the import metric collectors.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_import_operation_attempts_total",
			Help: "Number of import service operations started.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_import_operation_successes_total",
			Help: "Number of import service operations completed without error.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_import_operation_failures_total",
			Help: "Number of import service operations that returned an error.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_import_operation_duration_seconds",
			Help:    "Duration of import service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_import_rows_processed_total",
			Help: "Rows processed by validation, by outcome.",
		}, []string{"outcome"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_import_commits_total",
			Help: "Commit attempts by terminal audit status.",
		}, []string{"status"}),
	}

	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.rows, m.commits)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRowsProcessed(_ context.Context, outcome string, count int) {
	m.rows.WithLabelValues(outcome).Add(float64(count))
}

func (m *PrometheusMetrics) RecordCommitOutcome(_ context.Context, status string) {
	m.commits.WithLabelValues(status).Inc()
}
