// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package cards

import (
	"errors"
	"math"
	"testing"
)

func TestCardIDEquality(t *testing.T) {
	a := NewCardID("Counterspell", GameMagic)
	b := NewCardID("Counterspell", GameMagic)
	c := NewCardID("Counterspell", GamePokemon)

	if a != b {
		t.Error("identical name+game should be equal")
	}
	if a == c {
		t.Error("same name in different games must not be equal")
	}

	// Map keying uses the pair.
	m := map[CardID]int{a: 1, c: 2}
	if len(m) != 2 {
		t.Errorf("expected 2 distinct keys, got %d", len(m))
	}
}

func TestCardIDKeyOrdering(t *testing.T) {
	a := NewCardID("Aaa", GameMagic)
	b := NewCardID("Bbb", GameMagic)
	if !(a.Key() < b.Key()) {
		t.Errorf("expected %q < %q", a.Key(), b.Key())
	}
}

func TestCardIDValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    CardID
		wantErr bool
	}{
		{"valid", NewCardID("Lightning Bolt", GameMagic), false},
		{"empty name", NewCardID("  ", GameMagic), true},
		{"unknown game", CardID{Name: "Pikachu", Game: "hearthstone"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCard) {
				t.Errorf("expected ErrInvalidCard, got %v", err)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	id, err := ParseKey("magic/Lightning Bolt")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if id != NewCardID("Lightning Bolt", GameMagic) {
		t.Errorf("unexpected id: %+v", id)
	}
	// Card names may themselves contain a slash.
	id, err = ParseKey("magic/Fire // Ice")
	if err != nil || id.Name != "Fire // Ice" {
		t.Errorf("slash name: got (%+v, %v)", id, err)
	}

	for _, bad := range []string{"", "noslash", "chess/Rook", "magic/"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) accepted", bad)
		}
	}
}

func TestRoleSetJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b RoleSet
		want float64
	}{
		{"both empty", NewRoleSet(), NewRoleSet(), 0},
		{"identical", NewRoleSet("removal", "threat"), NewRoleSet("removal", "threat"), 1},
		{"disjoint", NewRoleSet("removal"), NewRoleSet("threat"), 0},
		{"partial", NewRoleSet("removal", "threat"), NewRoleSet("removal", "card_draw"), 1.0 / 3.0},
		{"one empty", NewRoleSet("removal"), NewRoleSet(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Jaccard(tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Jaccard() = %f, want %f", got, tt.want)
			}
			// Symmetry.
			if rev := tt.b.Jaccard(tt.a); math.Abs(got-rev) > 1e-12 {
				t.Errorf("Jaccard not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestRoleSetIntersects(t *testing.T) {
	a := NewRoleSet("removal", "threat")
	if !a.Intersects(NewRoleSet("threat", "ramp")) {
		t.Error("expected shared tag to intersect")
	}
	if a.Intersects(NewRoleSet("card_draw")) {
		t.Error("disjoint sets must not intersect")
	}
	if a.Intersects(NewRoleSet()) {
		t.Error("empty set must not intersect")
	}
}
