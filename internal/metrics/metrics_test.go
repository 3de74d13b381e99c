// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/v1/similar", "200"))
	ObserveHTTPRequest("POST", "/v1/similar", 200, 10*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/v1/similar", "200"))
	if after != before+1 {
		t.Errorf("counter did not increment: %f -> %f", before, after)
	}
}

func TestObserveFusion(t *testing.T) {
	before := testutil.ToFloat64(FusionRequestsTotal.WithLabelValues("weighted_sum", "ok"))
	ObserveFusion("weighted_sum", "ok", time.Millisecond)
	after := testutil.ToFloat64(FusionRequestsTotal.WithLabelValues("weighted_sum", "ok"))
	if after != before+1 {
		t.Errorf("counter did not increment: %f -> %f", before, after)
	}
}

func TestObserveSuggestionSkipsZeroYield(t *testing.T) {
	before := testutil.ToFloat64(SuggestionsTotal.WithLabelValues("add"))
	ObserveSuggestion("add", 0, time.Millisecond)
	if after := testutil.ToFloat64(SuggestionsTotal.WithLabelValues("add")); after != before {
		t.Errorf("zero-yield request must not add to the counter: %f -> %f", before, after)
	}
	ObserveSuggestion("add", 3, time.Millisecond)
	if after := testutil.ToFloat64(SuggestionsTotal.WithLabelValues("add")); after != before+3 {
		t.Errorf("expected +3, got %f -> %f", before, testutil.ToFloat64(SuggestionsTotal.WithLabelValues("add")))
	}
}
