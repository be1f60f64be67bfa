package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Delivery metrics
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphmsg_deliveries_total",
			Help: "Total message deliveries",
		},
		[]string{"kind", "result"}, // result is "ok" or an error kind
	)

	TransformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphmsg_transform_duration_seconds",
			Help:    "Message transform duration",
			Buckets: []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"kind"},
	)

	AsyncDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graphmsg_async_discarded_total",
			Help: "Asynchronous deliveries whose result was discarded by cancellation",
		},
	)

	// Registry metrics
	RegistryNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphmsg_registry_nodes",
			Help: "Identities currently registered",
		},
	)

	RegistryEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphmsg_registry_edges",
			Help: "Undirected edges currently registered",
		},
	)

	// HTTP metrics for the ops endpoint
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphmsg_http_requests_total",
			Help: "Total ops HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphmsg_http_request_duration_seconds",
			Help:    "Ops HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)
)
