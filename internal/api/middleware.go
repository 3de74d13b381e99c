// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/decksage/decksage/internal/logging"
	"github.com/decksage/decksage/internal/metrics"
)

// requestID assigns every request an ID, echoes it in the X-Request-ID
// header and threads it through the context for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := logging.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// httpMetrics records request counts and latency per route.
func httpMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.ObserveHTTPRequest(r.Method, route, rec.status, time.Since(start))
	})
}
