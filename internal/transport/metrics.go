package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	roomsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catan_rooms_created_total",
		Help: "Total number of rooms created.",
	})
	actionsDispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catan_actions_dispatched_total",
		Help: "Total number of actions that dispatch accepted.",
	})
	actionsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catan_actions_rejected_total",
		Help: "Total number of actions dispatch rejected.",
	})
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catan_active_connections",
		Help: "Number of currently open WebSocket connections.",
	})
)
