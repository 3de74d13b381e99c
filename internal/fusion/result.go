// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import (
	"sort"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/signals"
)

// Status flags how a fusion request completed. Degraded outcomes are
// statuses, not errors, so callers branch instead of catching.
type Status string

const (
	// StatusOK means at least one signal contributed.
	StatusOK Status = "ok"

	// StatusNoSignal means every provider was unavailable for the query card.
	// The result is empty and callers should degrade (e.g. fall back to
	// archetype staples).
	StatusNoSignal Status = "no_signal"

	// StatusCancelled means the caller's context was cancelled before
	// aggregation finished. The result is partial or empty, never stale.
	StatusCancelled Status = "cancelled"
)

// Entry is one ranked candidate with its fused score and the set of signals
// that contributed evidence for it.
type Entry struct {
	Card    cards.CardID   `json:"card"`
	Score   float64        `json:"score"`
	Signals []signals.Kind `json:"signals"`
}

// Contributed reports whether the given signal scored this candidate.
func (e Entry) Contributed(kind signals.Kind) bool {
	for _, k := range e.Signals {
		if k == kind {
			return true
		}
	}
	return false
}

// RankedResult is the ordered output of one fusion request. Entries are
// sorted by strictly non-increasing score with deterministic tie-breaks.
type RankedResult struct {
	Query   cards.CardID `json:"query"`
	Status  Status       `json:"status"`
	Entries []Entry      `json:"entries"`
}

// Empty reports whether the result carries no candidates.
func (r *RankedResult) Empty() bool {
	return len(r.Entries) == 0
}

// sortEntries orders by fused score descending; ties break first by number
// of contributing signals (more corroboration wins), then by lexicographic
// card key so output is a reproducible total order.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if len(entries[i].Signals) != len(entries[j].Signals) {
			return len(entries[i].Signals) > len(entries[j].Signals)
		}
		return entries[i].Card.Key() < entries[j].Card.Key()
	})
}
