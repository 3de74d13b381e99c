// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package signals

import (
	"context"
	"math"

	"github.com/decksage/decksage/internal/cards"
)

// AffinityVectors maps a card to a sparse affinity vector keyed by archetype
// or format name. Values are inclusion rates or co-occurrence strengths in
// [0, 1], precomputed offline.
type AffinityVectors map[cards.CardID]map[string]float64

// Affinity scores candidates by cosine similarity of sparse affinity vectors:
// cards that appear in the same archetypes (or formats) at similar rates are
// similar. Serves both the archetype and format signal kinds.
type Affinity struct {
	kind    Kind
	vectors AffinityVectors
	norms   map[cards.CardID]float64
}

// NewAffinity creates an affinity provider of the given kind (archetype or
// format) over a precomputed table.
func NewAffinity(kind Kind, vectors AffinityVectors) *Affinity {
	norms := make(map[cards.CardID]float64, len(vectors))
	for id, vec := range vectors {
		var s float64
		for _, v := range vec {
			s += v * v
		}
		norms[id] = math.Sqrt(s)
	}
	return &Affinity{kind: kind, vectors: vectors, norms: norms}
}

// Kind implements Provider.
func (a *Affinity) Kind() Kind { return a.kind }

// Query implements Provider.
func (a *Affinity) Query(ctx context.Context, card cards.CardID, limit int) ([]Score, bool, error) {
	qv, ok := a.vectors[card]
	if !ok || len(qv) == 0 {
		return nil, false, nil
	}
	qn := a.norms[card]
	if qn == 0 {
		return []Score{}, true, nil
	}

	scores := make([]Score, 0, len(a.vectors)-1)
	for cand, cv := range a.vectors {
		if cand == card {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		cn := a.norms[cand]
		if cn == 0 {
			continue
		}
		var dp float64
		for k, v := range qv {
			dp += v * cv[k]
		}
		if dp > 0 {
			scores = append(scores, Score{Candidate: cand, Raw: dp / (qn * cn)})
		}
	}
	return sortTop(scores, limit), true, nil
}
