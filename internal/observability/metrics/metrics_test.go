package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSubmission("contact", "created")
	m.ObserveSubmission("contact", "created")
	m.ObserveDegraded("contact", "store")
	m.ObserveRateLimited("quote")
	m.ObserveLatency("contact", 0.25)

	mf := findMetric(t, reg, "spurtek_leads_submissions_total")
	if mf == nil {
		t.Fatal("expected submissions counter to be registered")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 submissions, got %v", got)
	}

	for _, name := range []string{"spurtek_leads_degraded_total", "spurtek_leads_rate_limited_total", "spurtek_leads_intake_latency_seconds"} {
		if findMetric(t, reg, name) == nil {
			t.Fatalf("expected %s to be exported", name)
		}
	}
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("quote", "created")
	m.ObserveDegraded("quote", "email")
	m.ObserveRateLimited("quote")
	m.ObserveLatency("quote", 0.1)
}
