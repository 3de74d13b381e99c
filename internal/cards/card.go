// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package cards

import (
	"fmt"
	"strings"
)

// Game identifies the card game a card belongs to.
type Game string

// Supported games.
const (
	GameMagic   Game = "magic"
	GameYugioh  Game = "yugioh"
	GamePokemon Game = "pokemon"
)

// Valid reports whether the game tag is one of the supported games.
func (g Game) Valid() bool {
	switch g {
	case GameMagic, GameYugioh, GamePokemon:
		return true
	default:
		return false
	}
}

// CardID identifies a card by name and game. Two cards with the same name in
// different games are distinct, so equality and hashing always use the pair.
// CardID is comparable and safe to use as a map key.
type CardID struct {
	Name string `json:"name"`
	Game Game   `json:"game"`
}

// NewCardID creates a CardID, trimming surrounding whitespace from the name.
func NewCardID(name string, game Game) CardID {
	return CardID{Name: strings.TrimSpace(name), Game: game}
}

// Key returns a stable string key for the card, usable for logging and
// deterministic ordering. Game comes first so cards sort by game then name.
func (c CardID) Key() string {
	return string(c.Game) + "/" + c.Name
}

// ParseKey parses a key produced by Key back into a CardID.
func ParseKey(key string) (CardID, error) {
	game, name, ok := strings.Cut(key, "/")
	if !ok {
		return CardID{}, fmt.Errorf("%w: malformed card key %q", ErrInvalidCard, key)
	}
	id := CardID{Name: name, Game: Game(game)}
	if err := id.Validate(); err != nil {
		return CardID{}, err
	}
	return id, nil
}

// String implements fmt.Stringer.
func (c CardID) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Game)
}

// IsZero reports whether the CardID is empty.
func (c CardID) IsZero() bool {
	return c.Name == "" && c.Game == ""
}

// Validate checks that the card has a name and a known game tag.
func (c CardID) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty card name", ErrInvalidCard)
	}
	if !c.Game.Valid() {
		return fmt.Errorf("%w: unknown game %q", ErrInvalidCard, c.Game)
	}
	return nil
}

// RoleTag is a functional role a card can serve in a deck, such as "removal",
// "threat" or "card_draw". Tags are produced by a RoleClassifier.
type RoleTag string

// RoleSet is an unordered set of functional roles.
type RoleSet map[RoleTag]struct{}

// NewRoleSet builds a RoleSet from tags.
func NewRoleSet(tags ...RoleTag) RoleSet {
	s := make(RoleSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the tag.
func (s RoleSet) Has(tag RoleTag) bool {
	_, ok := s[tag]
	return ok
}

// Intersects reports whether the two sets share at least one tag.
func (s RoleSet) Intersects(other RoleSet) bool {
	// Iterate the smaller set.
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if _, ok := large[t]; ok {
			return true
		}
	}
	return false
}

// Jaccard returns the Jaccard index of the two sets. Two empty sets have
// similarity 0, not 1, so untagged cards never look identical to each other.
func (s RoleSet) Jaccard(other RoleSet) float64 {
	if len(s) == 0 && len(other) == 0 {
		return 0
	}
	inter := 0
	for t := range s {
		if _, ok := other[t]; ok {
			inter++
		}
	}
	union := len(s) + len(other) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
