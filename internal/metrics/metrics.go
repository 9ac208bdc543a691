// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for production observability:
// - API endpoint latency and throughput
// - Recommendation pipeline outcomes
// - Collection provider health (circuit breaker)
// - History store operations

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation responses",
		},
		[]string{"mode"}, // "personalized", "fallback"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of recommendation failures",
		},
		[]string{"error_type"}, // "schema", "data_unavailable", "other"
	)

	// Collection Provider Metrics
	CollectionFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collection_fetches_total",
			Help: "Total number of collection provider fetches",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	CollectionFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collection_fetch_duration_seconds",
			Help:    "Duration of collection provider fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Metrics
	CatalogBottles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_bottles",
			Help: "Number of bottles loaded in the catalog",
		},
	)

	// History Store Metrics
	HistoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_writes_total",
			Help: "Total number of recommendation history writes",
		},
		[]string{"result"}, // "success", "failure"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

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

// RecordRecommendation records a recommendation response and its latency.
// Mode is "personalized" when scored against a user profile, "fallback" for
// the new-user path.
func RecordRecommendation(mode string, duration time.Duration) {
	RecommendationsServed.WithLabelValues(mode).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordRecommendationError records a recommendation failure by category.
func RecordRecommendationError(errorType string) {
	RecommendationErrors.WithLabelValues(errorType).Inc()
}

// RecordCollectionFetch records a collection provider fetch outcome.
func RecordCollectionFetch(result string, duration time.Duration) {
	CollectionFetchesTotal.WithLabelValues(result).Inc()
	CollectionFetchDuration.Observe(duration.Seconds())
}

// RecordHistoryWrite records a history store write outcome.
func RecordHistoryWrite(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	HistoryWritesTotal.WithLabelValues(result).Inc()
}
