// Package metrics defines the prometheus collectors for sitepay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled HTTP requests by method, route, and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitepay_http_requests_total",
		Help: "Total HTTP requests handled.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sitepay_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Computations counts payout calculations.
	Computations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitepay_computations_total",
		Help: "Total payout calculations performed.",
	})

	// ComputedSites observes how many sites each calculation covered.
	ComputedSites = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sitepay_computation_sites",
		Help:    "Sites covered per payout calculation.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
)
