// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package cards

import "errors"

// Sentinel errors for card and deck validation. Callers match with errors.Is.
var (
	// ErrInvalidCard indicates a card identifier that fails validation.
	ErrInvalidCard = errors.New("invalid card")

	// ErrInvalidDeck indicates a deck state that fails validation.
	ErrInvalidDeck = errors.New("invalid deck")

	// ErrUnknownCard indicates a card not present in the card store. Distinct
	// from "no signals available": the card simply does not exist.
	ErrUnknownCard = errors.New("unknown card")
)
