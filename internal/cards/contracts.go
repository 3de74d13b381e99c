// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package cards

import (
	"context"

	"github.com/shopspring/decimal"
)

// CardStore provides read access to the canonical card catalog. The catalog is
// owned elsewhere; engines only check existence and look up metadata.
type CardStore interface {
	// Exists reports whether the card is present in the catalog.
	Exists(ctx context.Context, card CardID) (bool, error)
}

// DeckStore provides read access to stored decks.
type DeckStore interface {
	// GetDeck returns the deck with the given ID.
	GetDeck(ctx context.Context, id string) (*DeckState, error)
}

// RoleClassifier maps a card to its functional roles. Pure lookup against
// precomputed tags; may return an empty set for untagged cards.
type RoleClassifier interface {
	Roles(card CardID) RoleSet
}

// AffinityTable exposes precomputed archetype and format affinities.
// Both lookups return (value, false) when no entry exists, which is distinct
// from an entry with value zero.
type AffinityTable interface {
	// ArchetypeInclusion returns the fraction of decks of the archetype that
	// include the card, in [0, 1].
	ArchetypeInclusion(card CardID, archetype string) (float64, bool)

	// FormatAffinity returns the card's co-occurrence strength within the
	// format, in [0, 1].
	FormatAffinity(card CardID, format string) (float64, bool)

	// ArchetypeStaples returns cards whose inclusion rate for the archetype is
	// at or above the threshold, with their rates.
	ArchetypeStaples(archetype string, threshold float64) map[CardID]float64
}

// PriceProvider supplies current market prices. Optional collaborator: a nil
// PriceProvider, or a (zero, false) return, degrades price-aware scoring
// silently rather than failing the request.
type PriceProvider interface {
	Price(card CardID) (decimal.Decimal, bool)
}
