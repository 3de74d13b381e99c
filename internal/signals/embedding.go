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

// Embedding scores candidates by cosine similarity in a precomputed vector
// space. The same provider serves the co-occurrence-embedding, text-embedding
// and GNN-embedding signal kinds; only the vector table and the kind differ.
//
// Cosine values in [-1, 1] are mapped to [0, 1] so raw scores are
// non-negative like every other signal.
type Embedding struct {
	kind    Kind
	vectors map[cards.CardID][]float32
	norms   map[cards.CardID]float64
}

// NewEmbedding creates an embedding provider of the given kind over a
// precomputed vector table. Vector norms are computed once at construction.
func NewEmbedding(kind Kind, vectors map[cards.CardID][]float32) *Embedding {
	norms := make(map[cards.CardID]float64, len(vectors))
	for id, v := range vectors {
		norms[id] = norm(v)
	}
	return &Embedding{kind: kind, vectors: vectors, norms: norms}
}

// Kind implements Provider.
func (e *Embedding) Kind() Kind { return e.kind }

// Query implements Provider. Brute-force scan over the table; embedding
// stores are bounded (tens of thousands of cards) so this stays cheap.
func (e *Embedding) Query(ctx context.Context, card cards.CardID, limit int) ([]Score, bool, error) {
	qv, ok := e.vectors[card]
	if !ok {
		return nil, false, nil
	}
	qn := e.norms[card]
	if qn == 0 {
		return []Score{}, true, nil
	}

	scores := make([]Score, 0, len(e.vectors)-1)
	for cand, cv := range e.vectors {
		if cand == card {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		cn := e.norms[cand]
		if cn == 0 || len(cv) != len(qv) {
			continue
		}
		cos := dot(qv, cv) / (qn * cn)
		scores = append(scores, Score{Candidate: cand, Raw: cosineToUnit(cos)})
	}
	return sortTop(scores, limit), true, nil
}

// cosineToUnit maps cosine similarity [-1, 1] to [0, 1].
func cosineToUnit(c float64) float64 {
	u := (c + 1) / 2
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}
