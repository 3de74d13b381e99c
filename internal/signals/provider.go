// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package signals

import (
	"context"

	"github.com/decksage/decksage/internal/cards"
)

// Kind identifies one similarity signal. Kinds key the fusion weight vector,
// so the string values must match what weight snapshots use.
type Kind string

// Known signal kinds.
const (
	KindCooccurrence  Kind = "cooccurrence"
	KindEmbedding     Kind = "embedding"
	KindTextEmbedding Kind = "text_embedding"
	KindGNN           Kind = "gnn"
	KindFunctional    Kind = "functional"
	KindArchetype     Kind = "archetype"
	KindFormat        Kind = "format"
	KindSideboard     Kind = "sideboard"
	KindTemporal      Kind = "temporal"
)

// KnownKinds lists every signal kind a weight snapshot may reference.
var KnownKinds = []Kind{
	KindCooccurrence,
	KindEmbedding,
	KindTextEmbedding,
	KindGNN,
	KindFunctional,
	KindArchetype,
	KindFormat,
	KindSideboard,
	KindTemporal,
}

// IsKnown reports whether k is a recognized signal kind.
func IsKnown(k Kind) bool {
	for _, known := range KnownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Score is one candidate with its raw, signal-scale score. Raw scores are not
// comparable across kinds; the fusion engine normalizes before combining.
type Score struct {
	Candidate cards.CardID `json:"candidate"`
	Raw       float64      `json:"raw"`
}

// Provider is one independent source of card-to-card similarity evidence.
// Implementations read immutable precomputed stores and are safe for
// concurrent use.
//
// Query returns (nil, false, nil) when the provider has no data for the card
// under this signal, which is distinct from (empty, true, nil): computed,
// found nothing. Results are ordered by descending raw score and bounded by
// limit.
type Provider interface {
	Kind() Kind
	Query(ctx context.Context, card cards.CardID, limit int) ([]Score, bool, error)
}

// sortTop orders scores by raw descending, breaking ties by candidate key for
// determinism, and truncates to limit.
func sortTop(scores []Score, limit int) []Score {
	sortScores(scores)
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}
