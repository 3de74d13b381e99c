// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/fusion"
)

// ActionType discriminates the suggestion variants.
type ActionType string

const (
	ActionAdd     ActionType = "add"
	ActionRemove  ActionType = "remove"
	ActionReplace ActionType = "replace"
)

// SuggestedAction is one proposed deck edit. The engine never applies
// actions itself; callers validate and apply them through their own
// patch machinery.
//
// For add and remove actions Card is set and From/To are zero. For
// replace actions From and To are set and Card is zero. Reason names
// every boost and rule that fired and is always non-empty.
type SuggestedAction struct {
	Type   ActionType   `json:"type"`
	Card   cards.CardID `json:"card,omitempty"`
	From   cards.CardID `json:"from,omitempty"`
	To     cards.CardID `json:"to,omitempty"`
	Score  float64      `json:"score"`
	Reason string       `json:"reason"`
}

// ReplaceMode selects the price direction of a replacement search.
type ReplaceMode string

const (
	ModeUpgrade   ReplaceMode = "upgrade"
	ModeDowngrade ReplaceMode = "downgrade"
	ModeLateral   ReplaceMode = "lateral"
)

// ParseReplaceMode validates a mode string. The empty string selects
// lateral.
func ParseReplaceMode(s string) (ReplaceMode, error) {
	switch ReplaceMode(s) {
	case "":
		return ModeLateral, nil
	case ModeUpgrade, ModeDowngrade, ModeLateral:
		return ReplaceMode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown replace mode %q", fusion.ErrInvalidRequest, s)
	}
}

// AdditionsRequest asks for cards worth adding to a deck.
type AdditionsRequest struct {
	Deck           *cards.DeckState
	Archetype      string
	RoleTargets    map[cards.RoleTag]int // overrides Config.RoleTargets when non-nil
	MaxSuggestions int                   // 0 selects Config.MaxSuggestions
	BudgetMax      *decimal.Decimal      // per-card price cap, nil means uncapped
}

// RemovalsRequest asks for the weakest cards in a deck.
type RemovalsRequest struct {
	Deck           *cards.DeckState
	Archetype      string
	RoleTargets    map[cards.RoleTag]int
	PreserveRoles  bool
	MaxSuggestions int
}

// ReplacementsRequest asks for functional alternatives to one card
// already in the deck.
type ReplacementsRequest struct {
	Deck           *cards.DeckState
	Target         cards.CardID
	Archetype      string
	Mode           ReplaceMode
	MaxSuggestions int
}

// SuggestAllRequest bundles the three searches for the combined
// endpoint. Replacements are only produced when Seed is set.
type SuggestAllRequest struct {
	Deck           *cards.DeckState
	Archetype      string
	Seed           *cards.CardID
	Mode           ReplaceMode
	RoleTargets    map[cards.RoleTag]int
	MaxSuggestions int
	BudgetMax      *decimal.Decimal
}
