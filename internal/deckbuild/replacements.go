// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"context"
	"fmt"

	"github.com/decksage/decksage/internal/fusion"
)

// SuggestReplacements proposes functional alternatives for one card in
// the deck. Candidates come from similarity to the target, restricted
// to cards sharing at least one role with it, then boosted by the
// mode-appropriate price comparison and by archetype staple status.
func (e *Engine) SuggestReplacements(ctx context.Context, req ReplacementsRequest) ([]SuggestedAction, error) {
	if err := validateDeck(req.Deck); err != nil {
		return nil, err
	}
	if err := req.Target.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", fusion.ErrInvalidRequest, err)
	}
	if req.Deck.Count(req.Target) == 0 {
		return nil, fmt.Errorf("%w: replacement target %s is not in the deck",
			fusion.ErrInvalidRequest, req.Target.Key())
	}
	mode, err := ParseReplaceMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	limit := req.MaxSuggestions
	if limit == 0 {
		limit = e.cfg.MaxSuggestions
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: max_suggestions must be >= 1, got %d", fusion.ErrInvalidRequest, limit)
	}

	res, err := e.sim.Fuse(ctx, fusion.Request{Query: req.Target, TopK: e.cfg.SeedTopK})
	if err != nil {
		return nil, err
	}
	if res.Status != fusion.StatusOK {
		return []SuggestedAction{}, nil
	}

	targetRoles := e.classifier.Roles(req.Target)

	out := make([]*candidate, 0, len(res.Entries))
	for _, entry := range res.Entries {
		if req.Deck.Count(entry.Card) > 0 {
			continue
		}
		// A replacement must serve at least one of the roles it frees up.
		if !targetRoles.Intersects(e.classifier.Roles(entry.Card)) {
			continue
		}
		c := &candidate{
			card:    entry.Card,
			score:   entry.Score,
			reasons: []string{fmt.Sprintf("functional_alternative (to %s)", req.Target.Name)},
		}
		if factor, reason, ok := e.priceBoost(mode, entry.Card, req.Target); ok {
			c.score *= factor
			c.reasons = append(c.reasons, reason)
		}
		if factor, inclusion, ok := e.archetypeBoost(entry.Card, req.Archetype); ok {
			c.score *= factor
			c.reasons = append(c.reasons, fmt.Sprintf("archetype_staple (inclusion %.2f)", inclusion))
		}
		out = append(out, c)
	}

	sortCandidates(out)
	if len(out) > limit {
		out = out[:limit]
	}

	actions := make([]SuggestedAction, len(out))
	for i, c := range out {
		actions[i] = SuggestedAction{
			Type:   ActionReplace,
			From:   req.Target,
			To:     c.card,
			Score:  c.score,
			Reason: c.reason(),
		}
	}
	return actions, nil
}
