// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/decksage/decksage/internal/cards"
)

func boostEngine(t *testing.T, affinity cards.AffinityTable, prices cards.PriceProvider) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), &stubSim{}, stubClassifier{}, affinity, prices, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestArchetypeBoost(t *testing.T) {
	affinity := &stubAffinity{inclusion: map[cards.CardID]map[string]float64{
		mtg("Staple"):   {"burn": 0.90},
		mtg("Marginal"): {"burn": 0.50},
	}}
	e := boostEngine(t, affinity, nil)

	tests := []struct {
		name      string
		card      cards.CardID
		archetype string
		want      float64
		applied   bool
	}{
		{"staple boosted", mtg("Staple"), "burn", 1.45, true},
		{"below threshold untouched", mtg("Marginal"), "burn", 1, false},
		{"unknown card untouched", mtg("Unknown"), "burn", 1, false},
		{"no archetype untouched", mtg("Staple"), "", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor, _, applied := e.archetypeBoost(tt.card, tt.archetype)
			if applied != tt.applied || !almostEqual(factor, tt.want) {
				t.Errorf("archetypeBoost() = (%f, %v), want (%f, %v)", factor, applied, tt.want, tt.applied)
			}
		})
	}
}

func TestRoleGapBoostSaturates(t *testing.T) {
	e := boostEngine(t, nil, nil)
	roles := cards.NewRoleSet("threat")

	tests := []struct {
		name string
		gap  int
		want float64
	}{
		{"small gap", 2, 1 + 0.3*0.2},
		{"span gap", 10, 1.3},
		{"oversize gap saturates", 25, 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gaps := map[cards.RoleTag]RoleGap{
				"threat": {Role: "threat", Current: 0, Target: tt.gap},
			}
			factor, _, applied := e.roleGapBoost(roles, gaps)
			if !applied || !almostEqual(factor, tt.want) {
				t.Errorf("roleGapBoost() = (%f, %v), want (%f, true)", factor, applied, tt.want)
			}
		})
	}

	if factor, _, applied := e.roleGapBoost(roles, map[cards.RoleTag]RoleGap{}); applied || factor != 1 {
		t.Errorf("no gaps must mean no boost, got (%f, %v)", factor, applied)
	}
}

func TestPriceBoostModes(t *testing.T) {
	prices := stubPrices{
		mtg("Target"):   "1.00",
		mtg("Pricier"):  "2.00",
		mtg("Cheaper"):  "0.50",
		mtg("Sideways"): "1.10",
	}
	e := boostEngine(t, nil, prices)

	tests := []struct {
		name      string
		mode      ReplaceMode
		candidate cards.CardID
		want      float64
		applied   bool
	}{
		{"upgrade fires on pricier", ModeUpgrade, mtg("Pricier"), 1.3, true},
		{"upgrade skips cheaper", ModeUpgrade, mtg("Cheaper"), 1, false},
		{"downgrade fires on cheaper", ModeDowngrade, mtg("Cheaper"), 1.2, true},
		{"downgrade skips pricier", ModeDowngrade, mtg("Pricier"), 1, false},
		{"lateral fires in band", ModeLateral, mtg("Sideways"), 1.1, true},
		{"lateral skips out of band", ModeLateral, mtg("Pricier"), 1, false},
		{"unpriced candidate skipped", ModeUpgrade, mtg("Unpriced"), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor, _, applied := e.priceBoost(tt.mode, tt.candidate, mtg("Target"))
			if applied != tt.applied || !almostEqual(factor, tt.want) {
				t.Errorf("priceBoost() = (%f, %v), want (%f, %v)", factor, applied, tt.want, tt.applied)
			}
		})
	}
}

func TestParseReplaceMode(t *testing.T) {
	if m, err := ParseReplaceMode(""); err != nil || m != ModeLateral {
		t.Errorf("empty mode: got (%q, %v)", m, err)
	}
	if _, err := ParseReplaceMode("sidegrade"); err == nil {
		t.Error("unknown mode accepted")
	}
}
