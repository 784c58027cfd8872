package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapcard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tapcard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CircleTransitionsTotal counts circle state transitions by operation.
	CircleTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapcard_circle_transitions_total",
		Help: "Total number of circle state transitions by operation",
	}, []string{"operation"})

	// QRGenerationsTotal counts generated profile QR codes.
	QRGenerationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tapcard_qr_generations_total",
		Help: "Total number of profile QR codes generated",
	})

	// AnalyticsEventsTotal counts recorded analytics events by type.
	AnalyticsEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapcard_analytics_events_total",
		Help: "Total number of analytics events recorded by type",
	}, []string{"event_type"})

	// RateLimitRejections counts requests rejected by the rate limiter per resource.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapcard_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"resource"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tapcard_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts WebSocket events pushed to clients by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapcard_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapcard_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCircleTransition increments the transition counter for an operation
// (invite, accept, reject, remove).
func RecordCircleTransition(operation string) {
	CircleTransitionsTotal.WithLabelValues(operation).Inc()
}

// RecordAnalyticsEvent increments the analytics event counter for the event type.
func RecordAnalyticsEvent(eventType string) {
	AnalyticsEventsTotal.WithLabelValues(eventType).Inc()
}
