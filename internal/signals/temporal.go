// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package signals

import (
	"context"
	"sort"

	"github.com/decksage/decksage/internal/cards"
)

// MonthlyCooccurrence maps "YYYY-MM" month keys to per-card co-occurrence
// weights for that month.
type MonthlyCooccurrence map[string]CooccurrenceWeights

// temporalWindow is how many trailing months contribute to the score.
const temporalWindow = 3

// Temporal scores candidates by recency-weighted co-occurrence: the last
// months of the table contribute linearly increasing weights, so pairs that
// trend together recently outrank historically paired cards.
type Temporal struct {
	months MonthlyCooccurrence
	// sortedMonths caches the chronologically sorted month keys.
	sortedMonths []string
}

// NewTemporal creates a temporal co-occurrence provider. Month keys must be
// "YYYY-MM" so lexicographic order is chronological order.
func NewTemporal(months MonthlyCooccurrence) *Temporal {
	keys := make([]string, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Strings(keys)
	return &Temporal{months: months, sortedMonths: keys}
}

// Kind implements Provider.
func (t *Temporal) Kind() Kind { return KindTemporal }

// Query implements Provider.
func (t *Temporal) Query(_ context.Context, card cards.CardID, limit int) ([]Score, bool, error) {
	recent := t.sortedMonths
	if len(recent) > temporalWindow {
		recent = recent[len(recent)-temporalWindow:]
	}

	totals := make(map[cards.CardID]float64)
	var totalWeight float64
	seen := false
	for i, month := range recent {
		weight := float64(i + 1) // more recent months weigh more
		totalWeight += weight
		row, ok := t.months[month][card]
		if !ok {
			continue
		}
		seen = true
		for cand, freq := range row {
			if cand == card {
				continue
			}
			totals[cand] += freq * weight
		}
	}
	if !seen {
		return nil, false, nil
	}

	scores := make([]Score, 0, len(totals))
	for cand, sum := range totals {
		scores = append(scores, Score{Candidate: cand, Raw: sum / totalWeight})
	}
	return sortTop(scores, limit), true, nil
}
