package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "free_gift"

// Gifts counts what reconciliation passes do to carts.
type Gifts struct {
	registry *prometheus.Registry

	Passes   prometheus.Counter
	Failures prometheus.Counter
	Lines    *prometheus.CounterVec
}

func NewGifts() *Gifts {
	g := &Gifts{
		registry: prometheus.NewRegistry(),
		Passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_passes_total",
			Help:      "Number of cart reconciliation passes.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_failures_total",
			Help:      "Number of reconciliation passes aborted by a storage error.",
		}),
		Lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Gift line changes by action (added, removed, skipped, clamped).",
		}, []string{"action"}),
	}

	g.registry.MustRegister(g.Passes, g.Failures, g.Lines)
	return g
}

func (g *Gifts) Observe(added, removed, skipped, clamped int) {
	if g == nil {
		return
	}
	g.Passes.Inc()
	g.Lines.WithLabelValues("added").Add(float64(added))
	g.Lines.WithLabelValues("removed").Add(float64(removed))
	g.Lines.WithLabelValues("skipped").Add(float64(skipped))
	g.Lines.WithLabelValues("clamped").Add(float64(clamped))
}

func (g *Gifts) Fail() {
	if g == nil {
		return
	}
	g.Failures.Inc()
}

func (g *Gifts) Handler() http.Handler {
	return promhttp.HandlerFor(g.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
