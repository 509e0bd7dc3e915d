// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Engine Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_recommend_requests_total",
			Help: "Total recommendation requests by seeding path and outcome",
		},
		[]string{"path", "outcome"}, // path: seeded, liked, cold_start, fallback; outcome: ok, error
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulzion_recommend_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"path"},
	)

	RecommendResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_recommend_results_total",
			Help: "Total recommended articles returned, by candidate type",
		},
		[]string{"type"}, // similar, discover, random, surprise
	)

	RetrievalWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_retrieval_warnings_total",
			Help: "Upstream retrieval failures contained by the engine",
		},
		[]string{"op"},
	)

	// Vector Index Metrics
	VectorIndexDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulzion_vector_index_request_duration_seconds",
			Help:    "Duration of vector index HTTP calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "status"},
	)

	// Embedding Service Metrics
	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_embedding_requests_total",
			Help: "Total embedding service calls by status",
		},
		[]string{"status"}, // success, error
	)

	EmbeddingCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_embedding_cache_total",
			Help: "Query embedding cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	// Trending Snapshot Metrics
	TrendingKeywords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulzion_trending_snapshot_keywords",
			Help: "Number of keywords in the loaded trending snapshot",
		},
	)

	TrendingReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_trending_reloads_total",
			Help: "Trending snapshot reload attempts by result",
		},
		[]string{"result"}, // success, error
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pulzion_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pulzion_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulzion_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulzion_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulzion_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)
)

// RecordRecommendation records one engine call and the types of the returned candidates.
func RecordRecommendation(path string, duration time.Duration, err error, types []string) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RecommendRequests.WithLabelValues(path, outcome).Inc()
	RecommendDuration.WithLabelValues(path).Observe(duration.Seconds())
	for _, t := range types {
		RecommendResults.WithLabelValues(t).Inc()
	}
}

// RecordRetrievalWarning counts a contained upstream failure.
func RecordRetrievalWarning(op string) {
	RetrievalWarnings.WithLabelValues(op).Inc()
}

// RecordVectorIndexRequest records a vector index HTTP call
func RecordVectorIndexRequest(op string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	VectorIndexDuration.WithLabelValues(op, status).Observe(duration.Seconds())
}

// RecordEmbeddingRequest records an embedding service call
func RecordEmbeddingRequest(err error) {
	if err != nil {
		EmbeddingRequests.WithLabelValues("error").Inc()
		return
	}
	EmbeddingRequests.WithLabelValues("success").Inc()
}

// RecordEmbeddingCache records a query embedding cache lookup.
func RecordEmbeddingCache(hit bool) {
	if hit {
		EmbeddingCache.WithLabelValues("hit").Inc()
		return
	}
	EmbeddingCache.WithLabelValues("miss").Inc()
}

// RecordTrendingReload records a snapshot reload and, on success, its size.
func RecordTrendingReload(keywords int, err error) {
	if err != nil {
		TrendingReloads.WithLabelValues("error").Inc()
		return
	}
	TrendingReloads.WithLabelValues("success").Inc()
	TrendingKeywords.Set(float64(keywords))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
