package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the intake endpoints.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	degradedTotal    *prometheus.CounterVec
	rateLimitedTotal *prometheus.CounterVec
	intakeLatency    *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spurtek",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total intake submissions by kind and outcome",
		}, []string{"kind", "outcome"}),
		degradedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spurtek",
			Subsystem: "leads",
			Name:      "degraded_total",
			Help:      "Submissions that succeeded while a dependency failed",
		}, []string{"kind", "dependency"}),
		rateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spurtek",
			Subsystem: "leads",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		}, []string{"endpoint"}),
		intakeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spurtek",
			Subsystem: "leads",
			Name:      "intake_latency_seconds",
			Help:      "Latency of persistence plus notification for one submission",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.degradedTotal, m.rateLimitedTotal, m.intakeLatency)
	return m
}

// ObserveSubmission counts one request outcome ("created", "invalid", "error").
func (m *LeadMetrics) ObserveSubmission(kind, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveDegraded counts a swallowed persistence or notification failure.
func (m *LeadMetrics) ObserveDegraded(kind, dependency string) {
	if m == nil {
		return
	}
	m.degradedTotal.WithLabelValues(kind, dependency).Inc()
}

func (m *LeadMetrics) ObserveRateLimited(endpoint string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.WithLabelValues(endpoint).Inc()
}

func (m *LeadMetrics) ObserveLatency(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.intakeLatency.WithLabelValues(kind).Observe(seconds)
}
