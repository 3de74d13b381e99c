// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import (
	"github.com/decksage/decksage/internal/cards"
)

// MMRRerank applies Maximal Marginal Relevance to diversify a ranked list:
// iteratively pick the entry maximizing
//
//	lambda * score(i) - (1-lambda) * max(sim(i, s)) for selected s
//
// where similarity is the Jaccard index of functional-role sets, so the top
// of the list is not k near-identical alternatives. lambda = 1 is pure
// relevance and returns the input order.
//
// Reference: Carbonell & Goldstein, SIGIR 1998.
func MMRRerank(entries []Entry, k int, lambda float64, classifier cards.RoleClassifier) []Entry {
	if len(entries) == 0 || k <= 0 {
		return entries
	}
	if lambda < 0 {
		lambda = 0
	}
	if k > len(entries) {
		k = len(entries)
	}
	if lambda >= 1 || classifier == nil {
		return entries[:k]
	}

	roles := make([]cards.RoleSet, len(entries))
	for i, e := range entries {
		roles[i] = classifier.Roles(e.Card)
	}

	selected := make([]Entry, 0, k)
	selectedIdx := make(map[int]struct{}, k)

	for len(selected) < k {
		bestIdx := -1
		bestScore := 0.0
		for i, e := range entries {
			if _, ok := selectedIdx[i]; ok {
				continue
			}
			maxSim := 0.0
			for j := range selectedIdx {
				if sim := roles[i].Jaccard(roles[j]); sim > maxSim {
					maxSim = sim
				}
			}
			mmr := lambda*e.Score - (1-lambda)*maxSim
			if bestIdx < 0 || mmr > bestScore {
				bestIdx = i
				bestScore = mmr
			}
		}
		if bestIdx < 0 {
			break
		}
		selected = append(selected, entries[bestIdx])
		selectedIdx[bestIdx] = struct{}{}
	}
	return selected
}
