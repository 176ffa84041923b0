package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsNamespace prefixes all server metrics.
const metricsNamespace = "liftkit"

type metrics struct {
	mergeDuration    *prometheus.HistogramVec
	pagesRendered    *prometheus.CounterVec
	scriptsServed    prometheus.Counter
	cometConnections prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		mergeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "merge_duration_seconds",
			Help:      "Time spent merging a template into a document.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		pagesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pages_rendered_total",
			Help:      "Pages rendered, by merge mode.",
		}, []string{"mode"}),
		scriptsServed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "page_scripts_served_total",
			Help:      "Published page scripts served.",
		}),
		cometConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "comet_connections",
			Help:      "Currently connected comet clients.",
		}),
	}
}
