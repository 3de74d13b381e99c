// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package api provides the HTTP surface: request DTOs with
// go-playground/validator tags, chi routing and JSON handlers.
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/deckbuild"
	"github.com/decksage/decksage/internal/fusion"
	"github.com/decksage/decksage/internal/signals"
)

// CardRef identifies a card in a request body.
type CardRef struct {
	Name string `json:"name" validate:"required,max=200"`
	Game string `json:"game" validate:"required,oneof=magic yugioh pokemon"`
}

func (c CardRef) toCardID() cards.CardID {
	return cards.NewCardID(c.Name, cards.Game(c.Game))
}

// SimilarRequest is the body of POST /v1/similar.
type SimilarRequest struct {
	Card    CardRef            `json:"card" validate:"required"`
	TopK    int                `json:"top_k" validate:"omitempty,min=1,max=500"`
	Policy  string             `json:"policy" validate:"omitempty,oneof=weighted_sum rrf combsum combmax combmin"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

func (r SimilarRequest) toFusionRequest() fusion.Request {
	topK := r.TopK
	if topK == 0 {
		topK = 10
	}
	var weights fusion.Weights
	if r.Weights != nil {
		weights = make(fusion.Weights, len(r.Weights))
		for kind, w := range r.Weights {
			weights[signals.Kind(kind)] = w
		}
	}
	return fusion.Request{
		Query:   r.Card.toCardID(),
		TopK:    topK,
		Policy:  fusion.Policy(r.Policy),
		Weights: weights,
	}
}

// CardCountRef is one deck entry.
type CardCountRef struct {
	Card  CardRef `json:"card" validate:"required"`
	Count int     `json:"count" validate:"required,min=1,max=250"`
}

// DeckRef is a deck in a request body: named partitions of card counts.
type DeckRef struct {
	Game       string                    `json:"game" validate:"required,oneof=magic yugioh pokemon"`
	Format     string                    `json:"format" validate:"omitempty,max=50"`
	Partitions map[string][]CardCountRef `json:"partitions" validate:"required,min=1"`
}

func (d DeckRef) toDeckState() (*cards.DeckState, error) {
	partitions := make(map[string][]cards.CardCount, len(d.Partitions))
	for name, entries := range d.Partitions {
		converted := make([]cards.CardCount, len(entries))
		for i, e := range entries {
			converted[i] = cards.CardCount{Card: e.Card.toCardID(), Count: e.Count}
		}
		partitions[name] = converted
	}
	deck, err := cards.NewDeckState(cards.Game(d.Game), partitions)
	if err != nil {
		return nil, err
	}
	deck.Format = d.Format
	return deck, nil
}

// SuggestActionsRequest is the body of POST /v1/deck/suggest_actions.
type SuggestActionsRequest struct {
	Deck          DeckRef               `json:"deck" validate:"required"`
	ActionType    string                `json:"action_type" validate:"required,oneof=add remove replace suggest_all"`
	Archetype     string                `json:"archetype" validate:"omitempty,max=100"`
	SeedCard      *CardRef              `json:"seed_card,omitempty"`
	Mode          string                `json:"mode" validate:"omitempty,oneof=upgrade downgrade lateral"`
	TopK          int                   `json:"top_k" validate:"omitempty,min=1,max=100"`
	BudgetMax     *string               `json:"budget_max,omitempty"`
	PreserveRoles bool                  `json:"preserve_roles"`
	RoleTargets   map[string]int        `json:"role_targets,omitempty" validate:"omitempty,dive,min=0"`
}

func (r SuggestActionsRequest) budget() (*decimal.Decimal, error) {
	if r.BudgetMax == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*r.BudgetMax)
	if err != nil {
		return nil, fmt.Errorf("%w: budget_max %q is not a decimal", fusion.ErrInvalidRequest, *r.BudgetMax)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: budget_max must be >= 0", fusion.ErrInvalidRequest)
	}
	return &d, nil
}

func (r SuggestActionsRequest) roleTargets() map[cards.RoleTag]int {
	if r.RoleTargets == nil {
		return nil
	}
	targets := make(map[cards.RoleTag]int, len(r.RoleTargets))
	for role, n := range r.RoleTargets {
		targets[cards.RoleTag(role)] = n
	}
	return targets
}

// SimilarResponse is the body returned by POST /v1/similar.
type SimilarResponse struct {
	Query   CardRef         `json:"query"`
	Status  string          `json:"status"`
	Results []SimilarResult `json:"results"`
}

// SimilarResult is one ranked candidate.
type SimilarResult struct {
	Card    CardRef  `json:"card"`
	Score   float64  `json:"score"`
	Signals []string `json:"signals"`
}

// SuggestActionsResponse is the body returned by POST /v1/deck/suggest_actions.
type SuggestActionsResponse struct {
	Actions []deckbuild.SuggestedAction `json:"actions"`
}
