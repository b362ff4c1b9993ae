package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/flowgui/pkg/errors"
)

const (
	namespace = "flowgui"
	subsystem = "engine"
)

// Metrics counts frames and failures per wire and times each frame.
type Metrics struct {
	frames        *prometheus.CounterVec
	failures      *prometheus.CounterVec
	frameDuration *prometheus.HistogramVec
	warmWires     prometheus.Gauge
}

// NewMetrics creates unregistered engine metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "frames_total",
				Help:      "Frames activated per wire.",
			},
			[]string{"wire"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "activation_failures_total",
				Help:      "Frames that ended in an error, by error kind.",
			},
			[]string{"wire", "kind"},
		),
		frameDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "frame_duration_seconds",
				Help:      "Time spent activating one frame.",
				Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1},
			},
			[]string{"wire"},
		),
		warmWires: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "warm_wires",
				Help:      "Wires currently warmed up.",
			},
		),
	}
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *Metrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.frames)
	registry.MustRegister(m.failures)
	registry.MustRegister(m.frameDuration)
	registry.MustRegister(m.warmWires)
}

func (m *Metrics) frame(wire string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(wire).Inc()
	m.frameDuration.WithLabelValues(wire).Observe(seconds)
	if err != nil {
		m.failures.WithLabelValues(wire, errors.KindOf(err).String()).Inc()
	}
}

func (m *Metrics) warm(delta float64) {
	if m == nil {
		return
	}
	m.warmWires.Add(delta)
}
