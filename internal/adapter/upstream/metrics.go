package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the users endpoint fetch.
var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "users_upstream_requests_total",
		Help: "Total users endpoint fetches by outcome status code",
	}, []string{"status"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "users_upstream_request_duration_seconds",
		Help:    "Users endpoint fetch duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	fetchedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "users_upstream_records",
		Help: "Number of user records returned by the last successful fetch",
	})
)
