package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAssistantMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAssistantMetrics(reg)

	m.ObserveAttempt("gemini", "success")
	m.ObserveAttempt("gemini", "success")
	m.ObserveAttempt("aixplain", "error")
	m.ObserveFallback()
	m.ObserveLatency("gemini", 0.42)

	if got := testutil.ToFloat64(m.attempts.WithLabelValues("gemini", "success")); got != 2 {
		t.Errorf("expected 2 gemini successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.attempts.WithLabelValues("aixplain", "error")); got != 1 {
		t.Errorf("expected 1 aixplain error, got %v", got)
	}
	if got := testutil.ToFloat64(m.fallbacks); got != 1 {
		t.Errorf("expected 1 fallback, got %v", got)
	}
}

func TestPredictMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPredictMetrics(reg)

	m.Observe("diabetes", "success")
	if got := testutil.ToFloat64(m.requests.WithLabelValues("diabetes", "success")); got != 1 {
		t.Errorf("expected 1 diabetes success, got %v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var am *AssistantMetrics
	am.ObserveAttempt("gemini", "success")
	am.ObserveFallback()
	am.ObserveLatency("gemini", 1)

	var pm *PredictMetrics
	pm.Observe("heart", "error")
}
