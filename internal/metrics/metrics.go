// Package metrics exposes Prometheus instrumentation for the readiness service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeTimeout   = "timeout"
	OutcomeCancelled = "cancelled"
)

var (
	PipelineRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_pipeline_requests_total",
			Help: "Total number of model pipeline requests by outcome",
		},
		[]string{"pipeline", "outcome"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiness_pipeline_duration_seconds",
			Help:    "Duration of model pipeline requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 90},
		},
		[]string{"pipeline"},
	)

	DegradedReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_degraded_replies_total",
			Help: "Model replies replaced by an empty default or normalized",
		},
		[]string{"pipeline", "reason"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "readiness_active_sessions",
			Help: "Number of live browser sessions",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		},
		[]string{"route", "status"},
	)
)

// ObservePipeline records the outcome and latency of one pipeline call.
func ObservePipeline(pipeline, outcome string, elapsed time.Duration) {
	PipelineRequests.WithLabelValues(pipeline, outcome).Inc()
	PipelineDuration.WithLabelValues(pipeline).Observe(elapsed.Seconds())
}

// Degraded records a reply that was defaulted or repaired.
func Degraded(pipeline, reason string) {
	DegradedReplies.WithLabelValues(pipeline, reason).Inc()
}
