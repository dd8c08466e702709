package observers

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/lipm/internal/dynamo"
)

// FallSource reports whether the latest step was a fall.
type FallSource interface {
	JustFell() bool
}

// Prometheus mirrors the run into prometheus collectors. When falls is set it
// must be attached after that detector so JustFell refers to the same step.
type Prometheus struct {
	steps    prometheus.Counter
	falls    prometheus.Counter
	control  prometheus.Histogram
	position prometheus.Gauge
	velocity prometheus.Gauge
	source   FallSource
}

func NewPrometheus(reg prometheus.Registerer, falls FallSource) (*Prometheus, error) {
	p := &Prometheus{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lipm",
			Subsystem: "sim",
			Name:      "steps_total",
			Help:      "Total simulation steps observed",
		}),
		falls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lipm",
			Subsystem: "sim",
			Name:      "falls_total",
			Help:      "Total steps flagged as falls",
		}),
		control: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lipm",
			Subsystem: "sim",
			Name:      "control_abs",
			Help:      "Absolute foot placement per step",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.3, 0.5, 1},
		}),
		position: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lipm",
			Subsystem: "sim",
			Name:      "position",
			Help:      "Mass position after the latest step",
		}),
		velocity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lipm",
			Subsystem: "sim",
			Name:      "velocity",
			Help:      "Mass velocity after the latest step",
		}),
		source: falls,
	}

	// Registration is all or nothing.
	collectors := []prometheus.Collector{p.steps, p.falls, p.control, p.position, p.velocity}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) Update(r dynamo.Record) error {
	p.steps.Inc()
	p.control.Observe(math.Abs(r.U))
	p.position.Set(r.XNext.P())
	p.velocity.Set(r.XNext.V())
	if p.source != nil && p.source.JustFell() {
		p.falls.Inc()
	}
	return nil
}
