// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"testing"

	"github.com/decksage/decksage/internal/cards"
)

func TestRoleGapSize(t *testing.T) {
	tests := []struct {
		name string
		gap  RoleGap
		want int
	}{
		{"open gap", RoleGap{Current: 4, Target: 14}, 10},
		{"met target", RoleGap{Current: 14, Target: 14}, 0},
		{"over target never negative", RoleGap{Current: 20, Target: 14}, 0},
		{"empty deck", RoleGap{Current: 0, Target: 8}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gap.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRoleCountsMultipliesByCopies(t *testing.T) {
	deck := mustDeck(t, map[cards.CardID]int{
		mtg("Swords to Plowshares"): 4,
		mtg("Tarmogoyf"):            3,
	})
	classifier := stubClassifier{
		mtg("Swords to Plowshares"): cards.NewRoleSet("removal"),
		mtg("Tarmogoyf"):            cards.NewRoleSet("threat", "creature"),
	}

	counts := roleCounts(deck, classifier)
	if counts["removal"] != 4 {
		t.Errorf("removal count = %d, want 4", counts["removal"])
	}
	if counts["threat"] != 3 || counts["creature"] != 3 {
		t.Errorf("multi-role card must count into every role: %v", counts)
	}
}

func TestRoleGapsIncludesUntargetedRoles(t *testing.T) {
	counts := map[cards.RoleTag]int{"removal": 4, "ramp": 2}
	targets := map[cards.RoleTag]int{"removal": 8, "threat": 14}

	gaps := roleGaps(counts, targets)
	if g := gaps["removal"]; g.Size() != 4 {
		t.Errorf("removal gap = %d, want 4", g.Size())
	}
	if g := gaps["threat"]; g.Size() != 14 {
		t.Errorf("threat gap = %d, want 14", g.Size())
	}
	// Present in the deck but untargeted: visible with a zero target.
	if g, ok := gaps["ramp"]; !ok || g.Target != 0 || g.Current != 2 {
		t.Errorf("untargeted role missing or wrong: %+v", g)
	}
}

func TestLargestGapFilled(t *testing.T) {
	gaps := map[cards.RoleTag]RoleGap{
		"removal": {Role: "removal", Current: 4, Target: 8},
		"threat":  {Role: "threat", Current: 0, Target: 14},
		"ramp":    {Role: "ramp", Current: 6, Target: 6},
	}

	gap, ok := largestGapFilled(cards.NewRoleSet("removal", "threat"), gaps)
	if !ok || gap.Role != "threat" {
		t.Errorf("expected threat (largest open gap), got %+v ok=%v", gap, ok)
	}

	// A role with no open gap does not count.
	if _, ok := largestGapFilled(cards.NewRoleSet("ramp"), gaps); ok {
		t.Error("closed gap reported as open")
	}

	// Untagged cards fill nothing.
	if _, ok := largestGapFilled(cards.NewRoleSet(), gaps); ok {
		t.Error("empty role set reported a gap")
	}
}
