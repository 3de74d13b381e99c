// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package signals

import (
	"context"

	"github.com/decksage/decksage/internal/cards"
)

// CooccurrenceWeights maps a card to co-occurring cards with a normalized
// frequency in [0, 1].
type CooccurrenceWeights map[cards.CardID]map[cards.CardID]float64

// Sideboard scores candidates by how often they appear in sideboards
// alongside the query card. Sideboard slots answer the same metagame
// pressures, so sideboard neighbors are strong substitution evidence.
type Sideboard struct {
	weights CooccurrenceWeights
}

// NewSideboard creates a sideboard co-occurrence provider.
func NewSideboard(weights CooccurrenceWeights) *Sideboard {
	return &Sideboard{weights: weights}
}

// Kind implements Provider.
func (s *Sideboard) Kind() Kind { return KindSideboard }

// Query implements Provider.
func (s *Sideboard) Query(_ context.Context, card cards.CardID, limit int) ([]Score, bool, error) {
	row, ok := s.weights[card]
	if !ok {
		return nil, false, nil
	}
	scores := make([]Score, 0, len(row))
	for cand, w := range row {
		if cand == card || w <= 0 {
			continue
		}
		scores = append(scores, Score{Candidate: cand, Raw: w})
	}
	return sortTop(scores, limit), true, nil
}
