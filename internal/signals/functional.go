// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package signals

import (
	"context"

	"github.com/decksage/decksage/internal/cards"
)

// Functional scores candidates by Jaccard similarity of functional-role tag
// sets: two cards that serve the same roles are functional alternatives.
// The candidate universe is the fixed set of tagged cards.
type Functional struct {
	classifier cards.RoleClassifier
	universe   []cards.CardID
}

// NewFunctional creates a functional-role provider. universe lists the cards
// the classifier has tags for; cards outside it are unknown to this signal.
func NewFunctional(classifier cards.RoleClassifier, universe []cards.CardID) *Functional {
	return &Functional{classifier: classifier, universe: universe}
}

// Kind implements Provider.
func (f *Functional) Kind() Kind { return KindFunctional }

// Query implements Provider. A card with no tags is treated as unknown to
// this signal rather than uniformly dissimilar.
func (f *Functional) Query(ctx context.Context, card cards.CardID, limit int) ([]Score, bool, error) {
	queryRoles := f.classifier.Roles(card)
	if len(queryRoles) == 0 {
		return nil, false, nil
	}

	scores := make([]Score, 0, len(f.universe))
	for _, cand := range f.universe {
		if cand == card {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		sim := queryRoles.Jaccard(f.classifier.Roles(cand))
		if sim > 0 {
			scores = append(scores, Score{Candidate: cand, Raw: sim})
		}
	}
	return sortTop(scores, limit), true, nil
}
