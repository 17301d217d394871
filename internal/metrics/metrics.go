// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshelf_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StoreState follows store.ConnState: 0 disconnected, 1 connecting, 2 ready, 3 disconnecting.
	StoreState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookshelf_store_state",
			Help: "Current store connection state",
		},
	)

	SeedRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshelf_seed_runs_total",
			Help: "Total number of database seeding runs by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest records a finished request. Unmatched paths should be
// passed with an empty route to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSeedRun counts a seeding attempt.
func RecordSeedRun(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	SeedRunsTotal.WithLabelValues(outcome).Inc()
}
