package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_requests_total",
			Help: "Total number of backing store requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	StoreRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_request_duration_seconds",
			Help:    "Duration of backing store requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	MalformedRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "malformed_records_total",
			Help: "Total number of channel entries dropped because they did not parse",
		},
		[]string{"channel"},
	)
)
