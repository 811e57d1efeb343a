package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the response
// pipeline.
type Metrics struct {
	CasesTotal       *prometheus.CounterVec // labels: severity={minor,major_trauma}
	PipelineDuration prometheus.Histogram

	// Outbound provider metrics.
	ExternalCalls *prometheus.CounterVec // labels: service={llm,maps,telephony}, outcome={success,error,refused}
	Fallbacks     *prometheus.CounterVec // labels: stage={classify,locate,notify}
	FacilityCache *prometheus.CounterVec // labels: result={hit,miss}
	Notifications *prometheus.CounterVec // labels: status={placed,skipped,failed}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.CasesTotal,
		m.PipelineDuration,
		m.ExternalCalls,
		m.Fallbacks,
		m.FacilityCache,
		m.Notifications,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can build pipelines repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emergency_response",
			Name:      "cases_total",
			Help:      "Processed cases by assessed severity.",
		}, []string{"severity"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "emergency_response",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a complete classify-locate-notify cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20},
		}),
		ExternalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emergency_response",
			Name:      "external_calls_total",
			Help:      "Outbound provider calls by service and outcome.",
		}, []string{"service", "outcome"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emergency_response",
			Name:      "fallbacks_total",
			Help:      "Stages that substituted deterministic fallback data.",
		}, []string{"stage"}),
		FacilityCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emergency_response",
			Name:      "facility_cache_total",
			Help:      "Facility lookup cache results.",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emergency_response",
			Name:      "notifications_total",
			Help:      "Notification outcomes by status.",
		}, []string{"status"}),
	}
}
