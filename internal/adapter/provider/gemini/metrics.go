package gemini

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts generation attempts. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
}

// NewMetrics registers the client's collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyplanner",
			Subsystem: "gemini",
			Name:      "attempts_total",
			Help:      "Generation HTTP attempts by outcome.",
		}, []string{"op", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyplanner",
			Subsystem: "gemini",
			Name:      "retries_total",
			Help:      "Generation retries by failure kind.",
		}, []string{"op", "kind"}),
	}
	reg.MustRegister(m.attempts, m.retries)
	return m
}

func (m *Metrics) attempt(op, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) retry(op, kind string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op, kind).Inc()
}
