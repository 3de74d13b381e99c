// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/fusion"
)

// removalCandidate carries the provisional score plus the inclusion
// rate used as the tie-break (weakest archetype fit surfaces first).
type removalCandidate struct {
	card      cards.CardID
	score     float64
	inclusion float64
	reasons   []string
}

// SuggestRemovals proposes cards to cut from the main partition. A card
// qualifies when it is not an archetype staple, when it is a staple
// below the inclusion floor, or when its role exceeds the redundancy
// ceiling. With PreserveRoles set, a removal that would push a role
// below its target is suppressed after provisional scoring.
func (e *Engine) SuggestRemovals(_ context.Context, req RemovalsRequest) ([]SuggestedAction, error) {
	if err := validateDeck(req.Deck); err != nil {
		return nil, err
	}
	limit := req.MaxSuggestions
	if limit == 0 {
		limit = e.cfg.MaxSuggestions
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: max_suggestions must be >= 1, got %d", fusion.ErrInvalidRequest, limit)
	}

	targets := req.RoleTargets
	if targets == nil {
		targets = e.cfg.RoleTargets
	}
	counts := roleCounts(req.Deck, e.classifier)

	var out []*removalCandidate
	for _, entry := range req.Deck.Cards(cards.PartitionMain) {
		card := entry.Card
		cand := &removalCandidate{card: card}

		if req.Archetype != "" && e.affinity != nil {
			inclusion, ok := e.affinity.ArchetypeInclusion(card, req.Archetype)
			cand.inclusion = inclusion
			switch {
			case !ok:
				cand.score = e.cfg.NonStapleScore
				cand.reasons = append(cand.reasons, fmt.Sprintf("not_a_staple (archetype %s)", req.Archetype))
			case inclusion < e.cfg.InclusionFloor:
				cand.score = e.cfg.WeakStapleScore
				cand.reasons = append(cand.reasons,
					fmt.Sprintf("weak_staple (inclusion %.2f below floor %.2f)", inclusion, e.cfg.InclusionFloor))
			}
		}

		for role := range e.classifier.Roles(card) {
			ceiling, ok := e.cfg.RedundancyCeilings[role]
			if !ok || counts[role] <= ceiling {
				continue
			}
			if e.cfg.RedundancyScore > cand.score {
				cand.score = e.cfg.RedundancyScore
			}
			cand.reasons = append(cand.reasons, fmt.Sprintf("redundant_%s (excess %s cards)", role, role))
		}

		if cand.score == 0 {
			continue
		}
		if req.PreserveRoles && breaksRoleTarget(card, e.classifier, counts, targets) {
			continue
		}
		out = append(out, cand)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		if out[i].inclusion != out[j].inclusion {
			return out[i].inclusion < out[j].inclusion
		}
		return out[i].card.Key() < out[j].card.Key()
	})
	if len(out) > limit {
		out = out[:limit]
	}

	actions := make([]SuggestedAction, len(out))
	for i, c := range out {
		actions[i] = SuggestedAction{
			Type:   ActionRemove,
			Card:   c.card,
			Score:  c.score,
			Reason: strings.Join(c.reasons, "; "),
		}
	}
	return actions, nil
}

// breaksRoleTarget simulates removing one copy of the card and reports
// whether any targeted role would drop below its target.
func breaksRoleTarget(card cards.CardID, classifier cards.RoleClassifier, counts, targets map[cards.RoleTag]int) bool {
	for role := range classifier.Roles(card) {
		target, ok := targets[role]
		if !ok {
			continue
		}
		if counts[role]-1 < target {
			return true
		}
	}
	return false
}
