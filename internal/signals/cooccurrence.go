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

// Adjacency maps a card to the set of cards it co-occurs with in decks.
// Built offline from deck corpora and treated as immutable at runtime.
type Adjacency map[cards.CardID]map[cards.CardID]struct{}

// Cooccurrence scores candidates by the Jaccard index of co-occurrence
// neighborhoods: cards played alongside the same cards are similar. The
// candidate pool is the query's direct neighbors.
type Cooccurrence struct {
	adj Adjacency
}

// NewCooccurrence creates a co-occurrence provider over a precomputed
// adjacency table.
func NewCooccurrence(adj Adjacency) *Cooccurrence {
	return &Cooccurrence{adj: adj}
}

// Kind implements Provider.
func (c *Cooccurrence) Kind() Kind { return KindCooccurrence }

// Query implements Provider.
func (c *Cooccurrence) Query(_ context.Context, card cards.CardID, limit int) ([]Score, bool, error) {
	neighbors, ok := c.adj[card]
	if !ok {
		return nil, false, nil
	}

	scores := make([]Score, 0, len(neighbors))
	for cand := range neighbors {
		if cand == card {
			continue
		}
		scores = append(scores, Score{Candidate: cand, Raw: c.jaccard(neighbors, c.adj[cand])})
	}
	return sortTop(scores, limit), true, nil
}

// jaccard computes |a ∩ b| / |a ∪ b| using |A ∪ B| = |A| + |B| - |A ∩ B|.
func (c *Cooccurrence) jaccard(a, b map[cards.CardID]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	inter := 0
	for id := range small {
		if _, ok := large[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// sortScores orders by raw descending with a lexicographic tiebreak.
func sortScores(scores []Score) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Raw != scores[j].Raw {
			return scores[i].Raw > scores[j].Raw
		}
		return scores[i].Candidate.Key() < scores[j].Candidate.Key()
	})
}
