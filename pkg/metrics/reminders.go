package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReminderMetrics records the outcome of reminder rule evaluations.
type ReminderMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	fired    *prometheus.CounterVec
	deduped  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewReminderMetrics registers the reminder metrics on the provided registerer.
func NewReminderMetrics(reg prometheus.Registerer) *ReminderMetrics {
	if reg == nil {
		return &ReminderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reminder_evaluation_duration_seconds",
		Help:    "Duration of reminder rule evaluations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_evaluations_total",
		Help: "Reminder rule evaluations by source record type.",
	}, []string{"source"})
	fired := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_notifications_created_total",
		Help: "Notifications created by the reminder evaluator.",
	}, []string{"source"})
	deduped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_dedup_skips_total",
		Help: "Reminder notifications skipped because an unread duplicate exists.",
	}, []string{"source"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reminder_evaluation_failures_total",
		Help: "Reminder evaluations that failed on a storage error.",
	}, []string{"source"})
	reg.MustRegister(duration, runs, fired, deduped, failures)
	return &ReminderMetrics{
		duration: duration,
		runs:     runs,
		fired:    fired,
		deduped:  deduped,
		failures: failures,
	}
}

// ObserveDuration records the duration of one evaluation for the named source.
func (r *ReminderMetrics) ObserveDuration(source string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncEvaluated increments the evaluation counter for the named source.
func (r *ReminderMetrics) IncEvaluated(source string) {
	if r == nil || r.runs == nil {
		return
	}
	r.runs.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFired increments the created-notification counter for the named source.
func (r *ReminderMetrics) IncFired(source string) {
	if r == nil || r.fired == nil {
		return
	}
	r.fired.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncDeduped increments the dedup-skip counter for the named source.
func (r *ReminderMetrics) IncDeduped(source string) {
	if r == nil || r.deduped == nil {
		return
	}
	r.deduped.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFailure increments the failure counter for the named source.
func (r *ReminderMetrics) IncFailure(source string) {
	if r == nil || r.failures == nil {
		return
	}
	r.failures.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
