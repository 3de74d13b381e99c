// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"github.com/decksage/decksage/internal/cards"
)

// RoleGap is the shortfall of one functional role against its target.
type RoleGap struct {
	Role    cards.RoleTag `json:"role"`
	Current int           `json:"current"`
	Target  int           `json:"target"`
}

// Size is the open gap, never negative.
func (g RoleGap) Size() int {
	if g.Target <= g.Current {
		return 0
	}
	return g.Target - g.Current
}

// roleCounts tallies copies per role across the deck's main partition.
// A card with N copies and two roles contributes N to each role.
func roleCounts(deck *cards.DeckState, classifier cards.RoleClassifier) map[cards.RoleTag]int {
	counts := make(map[cards.RoleTag]int)
	main := deck.Main()
	for card, n := range main {
		for role := range classifier.Roles(card) {
			counts[role] += n
		}
	}
	return counts
}

// roleGaps derives the per-role gaps for every targeted role. Roles
// present in the deck but not targeted carry a zero target so the
// redundancy pass can still see their counts.
func roleGaps(counts map[cards.RoleTag]int, targets map[cards.RoleTag]int) map[cards.RoleTag]RoleGap {
	gaps := make(map[cards.RoleTag]RoleGap, len(targets))
	for role, target := range targets {
		gaps[role] = RoleGap{Role: role, Current: counts[role], Target: target}
	}
	for role, n := range counts {
		if _, ok := gaps[role]; !ok {
			gaps[role] = RoleGap{Role: role, Current: n}
		}
	}
	return gaps
}

// largestGapFilled returns the biggest open gap among the roles the
// card fills, and whether any open gap was found.
func largestGapFilled(roles cards.RoleSet, gaps map[cards.RoleTag]RoleGap) (RoleGap, bool) {
	var best RoleGap
	found := false
	for role := range roles {
		gap, ok := gaps[role]
		if !ok || gap.Size() == 0 {
			continue
		}
		if !found || gap.Size() > best.Size() {
			best = gap
			found = true
		}
	}
	return best, found
}
