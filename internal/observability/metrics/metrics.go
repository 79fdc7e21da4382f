package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssistantMetrics exposes counters/histograms for the AI response pipeline.
type AssistantMetrics struct {
	attempts  *prometheus.CounterVec
	fallbacks prometheus.Counter
	latency   *prometheus.HistogramVec
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthpilot",
			Subsystem: "assistant",
			Name:      "provider_attempts_total",
			Help:      "Total provider generation attempts",
		}, []string{"provider", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "healthpilot",
			Subsystem: "assistant",
			Name:      "fallback_total",
			Help:      "Requests that fell back to the secondary provider",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthpilot",
			Subsystem: "assistant",
			Name:      "provider_latency_seconds",
			Help:      "Latency of provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.attempts, m.fallbacks, m.latency)
	return m
}

func (m *AssistantMetrics) ObserveAttempt(provider, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(provider, outcome).Inc()
}

func (m *AssistantMetrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *AssistantMetrics) ObserveLatency(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(provider).Observe(seconds)
}

// PredictMetrics counts risk-prediction passthrough outcomes.
type PredictMetrics struct {
	requests *prometheus.CounterVec
}

func NewPredictMetrics(reg prometheus.Registerer) *PredictMetrics {
	m := &PredictMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthpilot",
			Subsystem: "predict",
			Name:      "requests_total",
			Help:      "Total risk-prediction passthrough requests",
		}, []string{"model", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requests)
	return m
}

func (m *PredictMetrics) Observe(model, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(model, outcome).Inc()
}
