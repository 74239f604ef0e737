// Package metrics exposes engine and session counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns its registry so several collectors can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	Generations   *prometheus.CounterVec
	NodesBuilt    prometheus.Counter
	NodesExpanded prometheus.Counter
	Picks         *prometheus.CounterVec
	TickDuration  prometheus.Histogram
	Sessions      prometheus.Gauge
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Generations by outcome (started, resolved, stale, failed).",
			},
			[]string{"outcome"},
		),
		NodesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_built_total",
			Help:      "Nodes placed by resolved generations.",
		}),
		NodesExpanded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_expanded_total",
			Help:      "Nodes added by lazy expansion.",
		}),
		Picks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "picks_total",
				Help:      "Pointer picks by result (hit, miss).",
			},
			[]string{"result"},
		),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent in one animation tick, render included.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Open browser sessions.",
		}),
	}
	c.registry.MustRegister(
		c.Generations,
		c.NodesBuilt,
		c.NodesExpanded,
		c.Picks,
		c.TickDuration,
		c.Sessions,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) GenerationStarted()     { c.Generations.WithLabelValues("started").Inc() }
func (c *Collector) GenerationStale()       { c.Generations.WithLabelValues("stale").Inc() }
func (c *Collector) GenerationFailed()      { c.Generations.WithLabelValues("failed").Inc() }
func (c *Collector) Expanded(nodes int)     { c.NodesExpanded.Add(float64(nodes)) }
func (c *Collector) Ticked(d time.Duration) { c.TickDuration.Observe(d.Seconds()) }

func (c *Collector) GenerationResolved(nodes int) {
	c.Generations.WithLabelValues("resolved").Inc()
	c.NodesBuilt.Add(float64(nodes))
}

func (c *Collector) Picked(hit bool) {
	if hit {
		c.Picks.WithLabelValues("hit").Inc()
	} else {
		c.Picks.WithLabelValues("miss").Inc()
	}
}

func (c *Collector) SessionOpened() { c.Sessions.Inc() }
func (c *Collector) SessionClosed() { c.Sessions.Dec() }
