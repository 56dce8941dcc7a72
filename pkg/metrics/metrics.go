// Package metrics exposes Prometheus instrumentation for transformation passes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/morph/pkg/value"
)

const namespace = "morph"

// Collector records per-entry and per-pass transformation metrics.
type Collector struct {
	entries  *prometheus.CounterVec
	passes   prometheus.Counter
	duration prometheus.Histogram
}

// New creates a Collector and registers it with reg.
// A nil reg leaves the metrics unregistered.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_total",
				Help:      "Configuration entries transformed, by value kind.",
			},
			[]string{"kind"},
		),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_total",
			Help:      "Completed transformation passes.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Duration of transformation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(c.entries, c.passes, c.duration)
	}
	return c
}

// ObserveEntry counts one transformed entry of the given kind.
func (c *Collector) ObserveEntry(kind value.Kind) {
	c.entries.WithLabelValues(kind.String()).Inc()
}

// ObservePass records a completed pass.
func (c *Collector) ObservePass(d time.Duration) {
	c.passes.Inc()
	c.duration.Observe(d.Seconds())
}
