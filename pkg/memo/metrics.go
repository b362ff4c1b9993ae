package memo

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "flowgui"
	subsystem = "memo"
)

// Metrics counts cache hits and misses per cache name.
type Metrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// NewMetrics creates unregistered memo metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "hits_total",
				Help:      "Lookups served from a cached artifact.",
			},
			[]string{"cache"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "misses_total",
				Help:      "Lookups that recomputed the artifact.",
			},
			[]string{"cache"},
		),
	}
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *Metrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.hits)
	registry.MustRegister(m.misses)
}

func (m *Metrics) hit(cache string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(cache).Inc()
}

func (m *Metrics) miss(cache string) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(cache).Inc()
}
