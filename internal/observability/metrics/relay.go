package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RelayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Total number of relay requests by result",
		},
		[]string{"result"},
	)

	RelayCooldownRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_cooldown_rejections_total",
			Help: "Total number of relay requests rejected by the cooldown gate",
		},
	)
)
