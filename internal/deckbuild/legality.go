// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"github.com/decksage/decksage/internal/cards"
)

// basicLands are exempt from the Magic four-copy rule.
var basicLands = map[string]struct{}{
	"Plains": {}, "Island": {}, "Swamp": {}, "Mountain": {}, "Forest": {},
	"Wastes":                {},
	"Snow-Covered Plains":   {},
	"Snow-Covered Island":   {},
	"Snow-Covered Swamp":    {},
	"Snow-Covered Mountain": {},
	"Snow-Covered Forest":   {},
}

// basicEnergies are exempt from the Pokemon four-copy rule.
var basicEnergies = map[string]struct{}{
	"Grass Energy": {}, "Fire Energy": {}, "Water Energy": {},
	"Lightning Energy": {}, "Psychic Energy": {}, "Fighting Energy": {},
	"Darkness Energy": {}, "Metal Energy": {}, "Fairy Energy": {},
}

// singletonFormats are Magic formats where a deck holds at most one
// copy of any non-basic card.
var singletonFormats = map[string]struct{}{
	"Commander": {}, "cEDH": {}, "Brawl": {}, "Duel Commander": {},
}

// legalAdd checks whether one more copy of the card fits the game's
// copy limits. Deck-size minimums are deliberately ignored so the
// engine can suggest into incomplete decks; full legality is the
// applier's responsibility.
func legalAdd(deck *cards.DeckState, card cards.CardID) bool {
	total := deck.Count(card)

	switch deck.Game {
	case cards.GameYugioh:
		return total+1 <= 3
	case cards.GamePokemon:
		if _, ok := basicEnergies[card.Name]; ok {
			return true
		}
		return total+1 <= 4
	default: // magic
		if _, ok := basicLands[card.Name]; ok {
			return true
		}
		if _, ok := singletonFormats[deck.Format]; ok {
			return total+1 <= 1
		}
		return total+1 <= 4
	}
}
