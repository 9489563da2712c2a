// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// EventFeedConnections is the gauge of active event feed websocket connections.
	EventFeedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inkwell_event_feed_connections",
		Help: "Number of active event feed WebSocket connections",
	})

	// EventFeedEvents counts broadcast post events by type.
	EventFeedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_event_feed_events_total",
		Help: "Total post events broadcast to the event feed",
	}, []string{"event_type"})

	// EventFeedDrops counts messages dropped because a client buffer was full.
	EventFeedDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_event_feed_drops_total",
		Help: "Total event feed messages dropped due to backpressure",
	})

	// PostOperations counts repository write operations by kind and outcome.
	PostOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_post_operations_total",
		Help: "Total post create/update/delete operations by outcome",
	}, []string{"operation", "outcome"})
)
