// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nostagram_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReactionToggles counts reaction toggle outcomes by action.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nostagram_reaction_toggles_total",
		Help: "Total number of reaction toggles by resulting action",
	}, []string{"action"})

	// PushDeliveries counts push dispatch outcomes by status.
	PushDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nostagram_push_deliveries_total",
		Help: "Total number of push notification dispatches by status",
	}, []string{"status"})

	// PushTokensRemoved counts device tokens deleted after the provider reported them invalid.
	PushTokensRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nostagram_push_tokens_removed_total",
		Help: "Total number of invalid push tokens removed from storage",
	})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nostagram_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or its channel was closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nostagram_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)
