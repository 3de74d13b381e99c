// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package cards

import (
	"fmt"
	"sort"
)

// Common partition names.
const (
	PartitionMain = "main"
	PartitionSide = "side"
)

// Partition is an unordered multiset of cards. Counts are always >= 1 and a
// card appears at most once; duplicate entries collapse into the count.
type Partition map[CardID]int

// DeckState is a read view of a deck: named partitions of card counts.
// Engines never mutate a DeckState; they return proposed actions instead.
type DeckState struct {
	Game       Game                 `json:"game"`
	Format     string               `json:"format,omitempty"`
	Partitions map[string]Partition `json:"partitions"`
}

// CardCount is a card with its copy count, used when listing partitions in a
// deterministic order.
type CardCount struct {
	Card  CardID `json:"card"`
	Count int    `json:"count"`
}

// NewDeckState builds a validated DeckState. Duplicate card entries within a
// partition are collapsed by summing counts. Non-positive counts and cards
// from a different game than the deck are rejected.
func NewDeckState(game Game, partitions map[string][]CardCount) (*DeckState, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: unknown game %q", ErrInvalidDeck, game)
	}
	ds := &DeckState{
		Game:       game,
		Partitions: make(map[string]Partition, len(partitions)),
	}
	for name, entries := range partitions {
		if name == "" {
			return nil, fmt.Errorf("%w: empty partition name", ErrInvalidDeck)
		}
		part := make(Partition, len(entries))
		for _, e := range entries {
			if err := e.Card.Validate(); err != nil {
				return nil, fmt.Errorf("%w: partition %q: %v", ErrInvalidDeck, name, err)
			}
			if e.Card.Game != game {
				return nil, fmt.Errorf("%w: partition %q: card %s belongs to game %q, deck is %q",
					ErrInvalidDeck, name, e.Card.Name, e.Card.Game, game)
			}
			if e.Count < 1 {
				return nil, fmt.Errorf("%w: partition %q: card %s has non-positive count %d",
					ErrInvalidDeck, name, e.Card.Name, e.Count)
			}
			part[e.Card] += e.Count
		}
		ds.Partitions[name] = part
	}
	return ds, nil
}

// Main returns the main partition, or an empty partition if absent.
func (d *DeckState) Main() Partition {
	if p, ok := d.Partitions[PartitionMain]; ok {
		return p
	}
	return Partition{}
}

// Count returns the total number of copies of card across all partitions.
func (d *DeckState) Count(card CardID) int {
	total := 0
	for _, p := range d.Partitions {
		total += p[card]
	}
	return total
}

// Contains reports whether the named partition holds at least one copy.
func (d *DeckState) Contains(partition string, card CardID) bool {
	return d.Partitions[partition][card] > 0
}

// Size returns the total card count of the named partition.
func (d *DeckState) Size(partition string) int {
	total := 0
	for _, n := range d.Partitions[partition] {
		total += n
	}
	return total
}

// Cards returns the cards of the named partition sorted by card key, counts
// included. Deterministic order keeps downstream scoring reproducible.
func (d *DeckState) Cards(partition string) []CardCount {
	p := d.Partitions[partition]
	out := make([]CardCount, 0, len(p))
	for c, n := range p {
		out = append(out, CardCount{Card: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Card.Key() < out[j].Card.Key() })
	return out
}

// Clone returns a deep copy of the deck state. Used by engines that need to
// simulate an edit without touching the caller's view.
func (d *DeckState) Clone() *DeckState {
	clone := &DeckState{
		Game:       d.Game,
		Format:     d.Format,
		Partitions: make(map[string]Partition, len(d.Partitions)),
	}
	for name, p := range d.Partitions {
		cp := make(Partition, len(p))
		for c, n := range p {
			cp[c] = n
		}
		clone.Partitions[name] = cp
	}
	return clone
}

// Equal reports structural equality of two deck states.
func (d *DeckState) Equal(other *DeckState) bool {
	if d.Game != other.Game || d.Format != other.Format {
		return false
	}
	if len(d.Partitions) != len(other.Partitions) {
		return false
	}
	for name, p := range d.Partitions {
		op, ok := other.Partitions[name]
		if !ok || len(p) != len(op) {
			return false
		}
		for c, n := range p {
			if op[c] != n {
				return false
			}
		}
	}
	return true
}
