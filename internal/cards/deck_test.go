// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package cards

import (
	"errors"
	"testing"
)

func mustDeck(t *testing.T, game Game, partitions map[string][]CardCount) *DeckState {
	t.Helper()
	d, err := NewDeckState(game, partitions)
	if err != nil {
		t.Fatalf("NewDeckState: %v", err)
	}
	return d
}

func TestNewDeckStateCollapsesDuplicates(t *testing.T) {
	bolt := NewCardID("Lightning Bolt", GameMagic)
	d := mustDeck(t, GameMagic, map[string][]CardCount{
		PartitionMain: {
			{Card: bolt, Count: 2},
			{Card: bolt, Count: 2},
		},
	})

	if got := d.Main()[bolt]; got != 4 {
		t.Errorf("expected collapsed count 4, got %d", got)
	}
	if got := d.Size(PartitionMain); got != 4 {
		t.Errorf("Size = %d, want 4", got)
	}
}

func TestNewDeckStateValidation(t *testing.T) {
	bolt := NewCardID("Lightning Bolt", GameMagic)
	pika := NewCardID("Pikachu", GamePokemon)

	tests := []struct {
		name       string
		game       Game
		partitions map[string][]CardCount
	}{
		{"unknown game", "chess", nil},
		{"non-positive count", GameMagic, map[string][]CardCount{
			PartitionMain: {{Card: bolt, Count: 0}},
		}},
		{"cross-game card", GameMagic, map[string][]CardCount{
			PartitionMain: {{Card: pika, Count: 1}},
		}},
		{"empty partition name", GameMagic, map[string][]CardCount{
			"": {{Card: bolt, Count: 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeckState(tt.game, tt.partitions)
			if !errors.Is(err, ErrInvalidDeck) {
				t.Errorf("expected ErrInvalidDeck, got %v", err)
			}
		})
	}
}

func TestDeckStateCountAcrossPartitions(t *testing.T) {
	bolt := NewCardID("Lightning Bolt", GameMagic)
	d := mustDeck(t, GameMagic, map[string][]CardCount{
		PartitionMain: {{Card: bolt, Count: 3}},
		PartitionSide: {{Card: bolt, Count: 1}},
	})

	if got := d.Count(bolt); got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
	if !d.Contains(PartitionSide, bolt) {
		t.Error("expected side partition to contain card")
	}
}

func TestDeckStateCardsDeterministicOrder(t *testing.T) {
	d := mustDeck(t, GameMagic, map[string][]CardCount{
		PartitionMain: {
			{Card: NewCardID("Zephyr", GameMagic), Count: 1},
			{Card: NewCardID("Anguish", GameMagic), Count: 1},
			{Card: NewCardID("Murder", GameMagic), Count: 1},
		},
	})

	for i := 0; i < 5; i++ {
		got := d.Cards(PartitionMain)
		if got[0].Card.Name != "Anguish" || got[1].Card.Name != "Murder" || got[2].Card.Name != "Zephyr" {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}

func TestDeckStateCloneIsIndependent(t *testing.T) {
	bolt := NewCardID("Lightning Bolt", GameMagic)
	d := mustDeck(t, GameMagic, map[string][]CardCount{
		PartitionMain: {{Card: bolt, Count: 4}},
	})

	clone := d.Clone()
	if !d.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	clone.Partitions[PartitionMain][bolt] = 1
	if d.Main()[bolt] != 4 {
		t.Error("mutating clone must not affect original")
	}
	if d.Equal(clone) {
		t.Error("decks should differ after clone mutation")
	}
}
