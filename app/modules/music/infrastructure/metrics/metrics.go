// Package musicmetrics records service level metrics for the music module.
package musicmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MusicMetrics is the metrics surface used by the music service.
type MusicMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	// RecordConflict counts uniqueness rejections per entity kind.
	RecordConflict(ctx context.Context, entity string)

	// RecordCascadeDelete counts dependent rows purged before an owner delete.
	RecordCascadeDelete(ctx context.Context, owner, relation string, rows int64)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	conflicts *prometheus.CounterVec
	cascades  *prometheus.CounterVec
}

// NewPrometheus registers the music collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (MusicMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "music",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "music",
			Name:      "operation_success_total",
			Help:      "Service operations that finished without an infrastructure error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "music",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an infrastructure error or panicked.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "music",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "music",
			Name:      "conflicts_total",
			Help:      "Writes rejected by a uniqueness rule.",
		}, []string{"entity"}),
		cascades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "music",
			Name:      "cascade_deleted_rows_total",
			Help:      "Dependent rows removed by cascading deletes.",
		}, []string{"owner", "relation"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.conflicts, m.cascades} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordConflict(_ context.Context, entity string) {
	m.conflicts.WithLabelValues(entity).Inc()
}

func (m *prometheusMetrics) RecordCascadeDelete(_ context.Context, owner, relation string, rows int64) {
	m.cascades.WithLabelValues(owner, relation).Add(float64(rows))
}

type noop struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() MusicMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordConflict(context.Context, string)                                 {}
func (noop) RecordCascadeDelete(context.Context, string, string, int64)             {}
