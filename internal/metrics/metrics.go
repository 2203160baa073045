package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Inbound best-stories requests by outcome (success, empty, error)
	StoriesRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_requests_total",
			Help: "Total number of best stories requests",
		},
		[]string{"outcome"},
	)

	StoriesRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stories_request_duration_seconds",
			Help:    "Duration of best stories aggregation",
			Buckets: prometheus.DefBuckets,
		},
	)

	StoriesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stories_returned",
			Help:    "Number of stories returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 500},
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of story cache hits",
		},
		[]string{"level"},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of story cache misses",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache errors",
		},
		[]string{"level", "kind"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Duration of cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "level"},
	)

	// L1 capacity metrics only (in-memory level)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of keys held by a cache level",
		},
		[]string{"level"},
	)

	KeyDBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "keydb_pool_connections",
			Help: "KeyDB connection pool state",
		},
		[]string{"state"},
	)

	// Upstream calls by endpoint (ids, item) and error category
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to the story ranking service",
		},
		[]string{"endpoint", "category"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of requests to the story ranking service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	UpstreamIDMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upstream_id_mismatch_total",
			Help: "Items whose reported id differs from the requested id",
		},
	)

	FailureDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "failure_decisions_total",
			Help: "Pipeline errors by stage, category and decision",
		},
		[]string{"stage", "category", "decision"},
	)
)

// RecordStoriesRequest records the outcome of one best-stories request
func RecordStoriesRequest(outcome string, returned int) {
	StoriesRequests.WithLabelValues(outcome).Inc()
	StoriesReturned.Observe(float64(returned))
}

// TimeStoriesRequest returns a timer function for the aggregation duration
func TimeStoriesRequest() func() {
	timer := prometheus.NewTimer(StoriesRequestDuration)
	return func() {
		timer.ObserveDuration()
	}
}

// RecordCacheHit records a cache hit at the given level
func RecordCacheHit(level string) {
	CacheHits.WithLabelValues(level).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordCacheError records a cache error with level and kind
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// TimeCacheOperation returns a timer function for a cache operation
func TimeCacheOperation(operation, level string) func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues(operation, level))
	return func() {
		timer.ObserveDuration()
	}
}

// UpdateL1CacheCapacity updates L1 cache capacity metrics only
func UpdateL1CacheCapacity(capacity int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// UpdateCacheKeys updates the number of keys in cache
func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// UpdateKeyDBPool updates KeyDB pool gauges
func UpdateKeyDBPool(total, idle, stale uint32) {
	KeyDBPoolConnections.WithLabelValues("total").Set(float64(total))
	KeyDBPoolConnections.WithLabelValues("idle").Set(float64(idle))
	KeyDBPoolConnections.WithLabelValues("stale").Set(float64(stale))
}

// RecordUpstreamRequest records one upstream call
func RecordUpstreamRequest(endpoint, category string) {
	UpstreamRequests.WithLabelValues(endpoint, category).Inc()
}

// TimeUpstreamRequest returns a timer function for an upstream call
func TimeUpstreamRequest(endpoint string) func() {
	timer := prometheus.NewTimer(UpstreamRequestDuration.WithLabelValues(endpoint))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordUpstreamIDMismatch counts an item whose id differs from the one requested
func RecordUpstreamIDMismatch() {
	UpstreamIDMismatches.Inc()
}

// RecordFailureDecision records how the failure policy handled an error
func RecordFailureDecision(stage, category, decision string) {
	FailureDecisions.WithLabelValues(stage, category, decision).Inc()
}
