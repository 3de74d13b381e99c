// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package metrics exposes Prometheus instrumentation for the similarity
// and deck completion pipelines.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fusion Engine metrics.
	FusionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fusion_requests_total",
			Help: "Total fusion queries by aggregation policy and result status",
		},
		[]string{"policy", "status"},
	)

	FusionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fusion_duration_seconds",
			Help:    "End-to-end duration of fusion queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"policy"},
	)

	SignalQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_queries_total",
			Help: "Per-signal provider calls by outcome (ok, unavailable, timeout, error)",
		},
		[]string{"kind", "outcome"},
	)

	SignalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signal_query_duration_seconds",
			Help:    "Duration of individual signal provider calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"kind"},
	)

	// Deck Completion metrics.
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_suggestions_total",
			Help: "Suggested actions produced, by action type",
		},
		[]string{"action"},
	)

	SuggestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deck_suggestion_duration_seconds",
			Help:    "Duration of deck suggestion requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Snapshot metrics.
	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weight_snapshot_reloads_total",
			Help: "Weight snapshot reload attempts by outcome",
		},
		[]string{"outcome"},
	)

	// HTTP metrics.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveFusion records one fusion query.
func ObserveFusion(policy, status string, duration time.Duration) {
	FusionRequestsTotal.WithLabelValues(policy, status).Inc()
	FusionDuration.WithLabelValues(policy).Observe(duration.Seconds())
}

// ObserveSuggestion records one deck suggestion request and its yield.
func ObserveSuggestion(operation string, actions int, duration time.Duration) {
	SuggestionDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if actions > 0 {
		SuggestionsTotal.WithLabelValues(operation).Add(float64(actions))
	}
}
