// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished requests by route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "family_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route template.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "family_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RelationshipTransitions counts state machine transitions.
	RelationshipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "family_relationship_transitions_total",
		Help: "Relationship and edit request transitions by kind",
	}, []string{"transition"})

	// MessagesSent counts persisted direct messages.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "family_messages_sent_total",
		Help: "Direct messages accepted",
	})

	// Forbidden counts rejected permission checks by operation.
	Forbidden = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "family_forbidden_total",
		Help: "Operations rejected by a permission check",
	}, []string{"operation"})

	// CacheLookups counts cache hits and misses by cache name.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "family_cache_lookups_total",
		Help: "Cache lookups by cache and result",
	}, []string{"cache", "result"})
)

// ObserveCache records a lookup result.
func ObserveCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}
