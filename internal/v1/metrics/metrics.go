package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for the game host.
//
// Naming convention: namespace_subsystem_name
// - namespace: tablehost (application-level grouping)
// - subsystem: websocket, room, dispatcher, game, circuit_breaker, rate_limit
// - name: specific metric (connections_active, events_total, etc.)
//
// Metric Types:
// - Gauge: current state (connections, rooms, seats)
// - Counter: cumulative events (messages processed, games started)
// - Histogram: latency distributions (command processing time)

var (
	ActiveWebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tablehost",
		Subsystem: "websocket",
		Name:      "connections_active",
		Help:      "Current number of active WebSocket connections",
	})

	ActiveRooms = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tablehost",
		Subsystem: "room",
		Name:      "rooms_active",
		Help:      "Current number of active rooms, by game family",
	}, []string{"family"})

	RoomOccupancy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tablehost",
		Subsystem: "room",
		Name:      "occupancy",
		Help:      "Number of player seats in a room, connected or not",
	}, []string{"room_id"})

	WebsocketEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tablehost",
		Subsystem: "websocket",
		Name:      "events_total",
		Help:      "Total WebSocket events processed",
	}, []string{"event_type", "status"})

	CommandProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tablehost",
		Subsystem: "dispatcher",
		Name:      "command_processing_seconds",
		Help:      "Time spent processing a dispatcher command",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"event_type"})

	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tablehost",
		Subsystem: "game",
		Name:      "started_total",
		Help:      "Total games started, by family",
	}, []string{"family"})

	GamesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tablehost",
		Subsystem: "game",
		Name:      "completed_total",
		Help:      "Total games completed, by family and outcome",
	}, []string{"family", "reason"})

	// CircuitBreakerState: 0 Closed (Healthy), 1 Open (Failure), 2 Half-Open (Recovering)
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tablehost",
		Subsystem: "circuit_breaker",
		Name:      "state",
		Help:      "Current state of the circuit breaker (0: Closed, 1: Open, 2: Half-Open)",
	}, []string{"service"})

	CircuitBreakerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tablehost",
		Subsystem: "circuit_breaker",
		Name:      "failures_total",
		Help:      "Total requests rejected by the circuit breaker",
	}, []string{"service"})

	RateLimitExceeded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tablehost",
		Subsystem: "rate_limit",
		Name:      "exceeded_total",
		Help:      "Total join attempts that exceeded the per-IP rate limit",
	}, []string{"reason"})

	RateLimitRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tablehost",
		Subsystem: "rate_limit",
		Name:      "requests_total",
		Help:      "Total join attempts checked against the rate limiter",
	}, []string{"endpoint"})
)

func IncConnection() {
	ActiveWebSocketConnections.Inc()
}

func DecConnection() {
	ActiveWebSocketConnections.Dec()
}
