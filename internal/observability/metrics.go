package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_cache_hits_total",
		Help: "Total number of cache hits by entity",
	}, []string{"entity"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_cache_misses_total",
		Help: "Total number of cache misses by entity",
	}, []string{"entity"})

	// EngagementEvents counts engagement mutations by kind
	// (like, dislike, clap, view).
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_engagement_events_total",
		Help: "Total number of engagement mutations by kind",
	}, []string{"kind"})
)
