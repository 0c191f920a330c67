package telemetry

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Matching metrics. Labels stay low-cardinality: operation names only, never
// project ids.
var (
	MatchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillforge_match_requests_total",
		Help: "Matching requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	MatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillforge_match_duration_seconds",
		Help:    "End-to-end latency of matching operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	TeamsProposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillforge_teams_proposed_total",
		Help: "Team proposals returned to callers.",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillforge_recommendation_cache_hits_total",
		Help: "Recommendation cache lookups by result.",
	}, []string{"result"})
)

// MetricsHandler exposes the Prometheus registry as a gin handler.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
