// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/fusion"
)

// Similarity is the slice of the fusion engine the completion engine
// consumes: one ranked similarity query per seed card.
type Similarity interface {
	Fuse(ctx context.Context, req fusion.Request) (*fusion.RankedResult, error)
}

// Engine proposes add, remove and replace actions for a deck. All
// operations are pure reads: the input DeckState is never mutated and
// the returned actions are proposals only.
type Engine struct {
	cfg        Config
	sim        Similarity
	classifier cards.RoleClassifier
	affinity   cards.AffinityTable
	prices     cards.PriceProvider
	logger     zerolog.Logger
}

// NewEngine wires the completion engine. The similarity engine and role
// classifier are required; affinity tables and prices are optional and
// their boosts simply never fire when absent.
func NewEngine(
	cfg Config,
	sim Similarity,
	classifier cards.RoleClassifier,
	affinity cards.AffinityTable,
	prices cards.PriceProvider,
	logger zerolog.Logger,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("deckbuild config: %w", err)
	}
	if sim == nil {
		return nil, errors.New("deckbuild: similarity engine is required")
	}
	if classifier == nil {
		return nil, errors.New("deckbuild: role classifier is required")
	}
	return &Engine{
		cfg:        cfg,
		sim:        sim,
		classifier: classifier,
		affinity:   affinity,
		prices:     prices,
		logger:     logger.With().Str("component", "deckbuild").Logger(),
	}, nil
}

// candidate accumulates a card's score and explanation parts while the
// pool is being built and boosted.
type candidate struct {
	card    cards.CardID
	score   float64
	reasons []string
}

func (c *candidate) reason() string { return strings.Join(c.reasons, "; ") }

// SuggestAdditions proposes cards to add. The deck is treated as a
// multi-seed similarity query merged with archetype staples, then every
// candidate is boosted by staple status and by the largest open role
// gap it fills.
func (e *Engine) SuggestAdditions(ctx context.Context, req AdditionsRequest) ([]SuggestedAction, error) {
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
	gaps := roleGaps(counts, targets)

	pool := e.additionPool(ctx, req.Deck, req.Archetype)
	if ctx.Err() != nil {
		return []SuggestedAction{}, nil
	}

	// Copy limits, then the optional budget cap.
	legal := make([]*candidate, 0, len(pool))
	for _, c := range pool {
		if legalAdd(req.Deck, c.card) {
			legal = append(legal, c)
		}
	}
	legal = e.applyBudget(legal, req.BudgetMax)

	for _, c := range legal {
		if factor, inclusion, ok := e.archetypeBoost(c.card, req.Archetype); ok {
			c.score *= factor
			c.reasons = append(c.reasons, fmt.Sprintf("archetype_staple (inclusion %.2f)", inclusion))
		}
		if factor, gap, ok := e.roleGapBoost(e.classifier.Roles(c.card), gaps); ok {
			c.score *= factor
			c.reasons = append(c.reasons, fmt.Sprintf("fills_role %s (gap %d)", gap.Role, gap.Size()))
		}
	}

	sortCandidates(legal)
	if len(legal) > limit {
		legal = legal[:limit]
	}

	actions := make([]SuggestedAction, len(legal))
	for i, c := range legal {
		actions[i] = SuggestedAction{
			Type:   ActionAdd,
			Card:   c.card,
			Score:  c.score,
			Reason: c.reason(),
		}
	}
	return actions, nil
}

// additionPool unions per-seed similarity results (max-merged across
// seeds) with archetype staples. Cards already in the deck are
// excluded. Seeds with no similarity signal are skipped, so a deck of
// entirely unknown cards degrades to staple-only suggestions.
func (e *Engine) additionPool(ctx context.Context, deck *cards.DeckState, archetype string) map[cards.CardID]*candidate {
	pool := make(map[cards.CardID]*candidate)
	inDeck := func(card cards.CardID) bool { return deck.Count(card) > 0 }

	for _, seed := range deck.Cards(cards.PartitionMain) {
		res, err := e.sim.Fuse(ctx, fusion.Request{Query: seed.Card, TopK: e.cfg.SeedTopK})
		if err != nil {
			// Unknown seeds and transient lookup failures cost one seed,
			// not the whole request.
			e.logger.Debug().Err(err).Str("seed", seed.Card.Key()).Msg("seed similarity query failed")
			continue
		}
		if res.Status != fusion.StatusOK {
			continue
		}
		for _, entry := range res.Entries {
			if inDeck(entry.Card) {
				continue
			}
			c, ok := pool[entry.Card]
			if !ok {
				pool[entry.Card] = &candidate{
					card:    entry.Card,
					score:   entry.Score,
					reasons: []string{"similar_to_deck"},
				}
				continue
			}
			if entry.Score > c.score {
				c.score = entry.Score
			}
		}
	}

	if archetype != "" && e.affinity != nil {
		for card, inclusion := range e.affinity.ArchetypeStaples(archetype, e.cfg.StapleThreshold) {
			if card.Game != deck.Game || inDeck(card) {
				continue
			}
			c, ok := pool[card]
			if !ok {
				pool[card] = &candidate{
					card:    card,
					score:   inclusion,
					reasons: []string{"archetype_pool"},
				}
				continue
			}
			if inclusion > c.score {
				c.score = inclusion
			}
		}
	}
	return pool
}

// applyBudget drops candidates priced above the cap. Unpriced
// candidates survive only as discounted fallbacks when nothing priced
// remains, so a sparse price table cannot empty the pool.
func (e *Engine) applyBudget(pool []*candidate, budget *decimal.Decimal) []*candidate {
	if budget == nil || e.prices == nil {
		return pool
	}
	affordable := make([]*candidate, 0, len(pool))
	fallbacks := make([]*candidate, 0)
	for _, c := range pool {
		price, ok := e.prices.Price(c.card)
		if !ok {
			c.score *= e.cfg.BudgetFallbackFactor
			c.reasons = append(c.reasons, "unpriced_fallback")
			fallbacks = append(fallbacks, c)
			continue
		}
		if price.LessThanOrEqual(*budget) {
			affordable = append(affordable, c)
		}
	}
	if len(affordable) > 0 {
		return affordable
	}
	return fallbacks
}

// sortCandidates orders by score descending with the card key as the
// deterministic tie-break.
func sortCandidates(cs []*candidate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].score != cs[j].score {
			return cs[i].score > cs[j].score
		}
		return cs[i].card.Key() < cs[j].card.Key()
	})
}

func validateDeck(deck *cards.DeckState) error {
	if deck == nil {
		return fmt.Errorf("%w: nil deck", cards.ErrInvalidDeck)
	}
	if !deck.Game.Valid() {
		return fmt.Errorf("%w: unknown game %q", cards.ErrInvalidDeck, deck.Game)
	}
	for name, part := range deck.Partitions {
		if name == "" {
			return fmt.Errorf("%w: empty partition name", cards.ErrInvalidDeck)
		}
		for card, n := range part {
			if n < 1 {
				return fmt.Errorf("%w: card %s has non-positive count %d", cards.ErrInvalidDeck, card.Key(), n)
			}
			if card.Game != deck.Game {
				return fmt.Errorf("%w: card %s belongs to game %q, deck is %q",
					cards.ErrInvalidDeck, card.Name, card.Game, deck.Game)
			}
		}
	}
	return nil
}

// SuggestAll runs additions and removals, plus replacements when a
// seed card is given, and returns the merged list sorted by score.
func (e *Engine) SuggestAll(ctx context.Context, req SuggestAllRequest) ([]SuggestedAction, error) {
	if err := validateDeck(req.Deck); err != nil {
		return nil, err
	}
	limit := req.MaxSuggestions
	if limit == 0 {
		limit = e.cfg.MaxSuggestions
	}

	adds, err := e.SuggestAdditions(ctx, AdditionsRequest{
		Deck:           req.Deck,
		Archetype:      req.Archetype,
		RoleTargets:    req.RoleTargets,
		MaxSuggestions: limit,
		BudgetMax:      req.BudgetMax,
	})
	if err != nil {
		return nil, err
	}
	removes, err := e.SuggestRemovals(ctx, RemovalsRequest{
		Deck:           req.Deck,
		Archetype:      req.Archetype,
		RoleTargets:    req.RoleTargets,
		PreserveRoles:  true,
		MaxSuggestions: limit,
	})
	if err != nil {
		return nil, err
	}

	actions := make([]SuggestedAction, 0, 3*limit)
	actions = append(actions, adds...)
	actions = append(actions, removes...)

	if req.Seed != nil {
		replaces, err := e.SuggestReplacements(ctx, ReplacementsRequest{
			Deck:           req.Deck,
			Target:         *req.Seed,
			Archetype:      req.Archetype,
			Mode:           req.Mode,
			MaxSuggestions: limit,
		})
		if err != nil {
			return nil, err
		}
		actions = append(actions, replaces...)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Score > actions[j].Score
	})
	if len(actions) > limit {
		actions = actions[:limit]
	}
	return actions, nil
}
