package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ObserveSchedule
const (
	OutcomeConstrained = "constrained"
	OutcomeFallback    = "fallback"
	OutcomeInfeasible  = "infeasible"
	OutcomeFatal       = "fatal"
)

// Collector records scheduling activity
type Collector struct {
	reg       *prometheus.Registry
	schedules *prometheus.CounterVec
	slots     prometheus.Histogram
	workers   prometheus.Histogram
}

// New creates a Collector with its own registry. namespace defaults to "roster".
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = "roster"
	}

	c := &Collector{
		reg: prometheus.NewRegistry(),
		schedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Schedule runs by outcome.",
		}, []string{"outcome"}),
		slots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "slots",
			Help:      "Active (shift, day) slots per schedule request.",
			Buckets:   []float64{1, 7, 14, 28, 56, 112, 224},
		}),
		workers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "workers",
			Help:      "Workers per schedule request.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
	c.reg.MustRegister(c.schedules, c.slots, c.workers)
	return c
}

// ObserveSchedule records one scheduling run
func (c *Collector) ObserveSchedule(outcome string, slots, workers int) {
	if c == nil {
		return
	}
	c.schedules.WithLabelValues(outcome).Inc()
	c.slots.Observe(float64(slots))
	c.workers.Observe(float64(workers))
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// Handler serves the metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
