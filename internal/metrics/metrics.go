package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// RendersTotal counts render attempts by result (ok, not_found, error)
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ssr_renders_total",
			Help: "Total server-side renders by result",
		},
		[]string{"result"},
	)

	// RenderDuration tracks renderer round-trip latency in seconds
	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ssr_render_duration_seconds",
			Help:    "Server-side render duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// StaticRequestsTotal counts requests answered from the dist directory
	StaticRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ssr_static_requests_total",
			Help: "Total static asset responses by cache class (immutable, revalidate)",
		},
		[]string{"cache"},
	)
)
