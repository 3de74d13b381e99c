// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"fmt"

	"github.com/decksage/decksage/internal/cards"
)

// Config holds the tunable constants of the completion engine. The
// numeric defaults are working values pending calibration against real
// deck data, which is why they live in configuration instead of the
// scoring code.
type Config struct {
	// MaxSuggestions caps every suggestion list. The cap is a
	// choice-overload control for the end user, not a performance knob.
	MaxSuggestions int `koanf:"max_suggestions"`

	// SeedTopK is the fusion top_k used for each per-seed similarity
	// query when treating the deck as a multi-seed query.
	SeedTopK int `koanf:"seed_top_k"`

	// StapleThreshold is the archetype inclusion rate above which a card
	// counts as a staple.
	StapleThreshold float64 `koanf:"staple_threshold"`

	// InclusionFloor is the inclusion rate below which a staple is
	// considered weak enough to propose for removal.
	InclusionFloor float64 `koanf:"inclusion_floor"`

	// RoleTargets are the default per-role card counts a deck should
	// reach. Requests may override them per call.
	RoleTargets map[cards.RoleTag]int `koanf:"role_targets"`

	// RedundancyCeilings are per-role copy counts beyond which extra
	// cards in that role are flagged as redundant.
	RedundancyCeilings map[cards.RoleTag]int `koanf:"redundancy_ceilings"`

	// ArchetypeBoostFactor scales the inclusion rate inside the staple
	// boost: boost = 1 + factor * inclusion.
	ArchetypeBoostFactor float64 `koanf:"archetype_boost_factor"`

	// RoleGapBoostFactor and RoleGapSpan shape the gap boost:
	// boost = 1 + factor * min(1, gap/span).
	RoleGapBoostFactor float64 `koanf:"role_gap_boost_factor"`
	RoleGapSpan        float64 `koanf:"role_gap_span"`

	// Removal scores per rule, all in (0,1].
	NonStapleScore  float64 `koanf:"non_staple_score"`
	WeakStapleScore float64 `koanf:"weak_staple_score"`
	RedundancyScore float64 `koanf:"redundancy_score"`

	// Price boosts per replacement mode, and the relative band that
	// counts as a lateral move.
	UpgradeBoost   float64 `koanf:"upgrade_boost"`
	DowngradeBoost float64 `koanf:"downgrade_boost"`
	LateralBoost   float64 `koanf:"lateral_boost"`
	LateralBand    float64 `koanf:"lateral_band"`

	// BudgetFallbackFactor discounts unpriced candidates kept as a
	// fallback when a budget cap filters out everything priced.
	BudgetFallbackFactor float64 `koanf:"budget_fallback_factor"`
}

// DefaultConfig returns the working defaults.
func DefaultConfig() Config {
	return Config{
		MaxSuggestions:  10,
		SeedTopK:        20,
		StapleThreshold: 0.70,
		InclusionFloor:  0.30,
		RoleTargets: map[cards.RoleTag]int{
			"removal":   8,
			"threat":    14,
			"card_draw": 6,
		},
		RedundancyCeilings: map[cards.RoleTag]int{
			"removal": 12,
			"threat":  20,
		},
		ArchetypeBoostFactor: 0.5,
		RoleGapBoostFactor:   0.3,
		RoleGapSpan:          10,
		NonStapleScore:       0.8,
		WeakStapleScore:      0.6,
		RedundancyScore:      0.7,
		UpgradeBoost:         1.3,
		DowngradeBoost:       1.2,
		LateralBoost:         1.1,
		LateralBand:          0.15,
		BudgetFallbackFactor: 0.9,
	}
}

// Validate rejects configurations that would corrupt scoring.
func (c Config) Validate() error {
	if c.MaxSuggestions < 1 {
		return fmt.Errorf("max_suggestions must be >= 1, got %d", c.MaxSuggestions)
	}
	if c.SeedTopK < 1 {
		return fmt.Errorf("seed_top_k must be >= 1, got %d", c.SeedTopK)
	}
	if c.StapleThreshold < 0 || c.StapleThreshold > 1 {
		return fmt.Errorf("staple_threshold must be in [0,1], got %f", c.StapleThreshold)
	}
	if c.InclusionFloor < 0 || c.InclusionFloor > 1 {
		return fmt.Errorf("inclusion_floor must be in [0,1], got %f", c.InclusionFloor)
	}
	if c.RoleGapSpan <= 0 {
		return fmt.Errorf("role_gap_span must be positive, got %f", c.RoleGapSpan)
	}
	for role, target := range c.RoleTargets {
		if target < 0 {
			return fmt.Errorf("role target for %q must be >= 0, got %d", role, target)
		}
	}
	for role, ceiling := range c.RedundancyCeilings {
		if ceiling < 1 {
			return fmt.Errorf("redundancy ceiling for %q must be >= 1, got %d", role, ceiling)
		}
	}
	for name, v := range map[string]float64{
		"non_staple_score":  c.NonStapleScore,
		"weak_staple_score": c.WeakStapleScore,
		"redundancy_score":  c.RedundancyScore,
	} {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be in (0,1], got %f", name, v)
		}
	}
	for name, v := range map[string]float64{
		"upgrade_boost":   c.UpgradeBoost,
		"downgrade_boost": c.DowngradeBoost,
		"lateral_boost":   c.LateralBoost,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be >= 1, got %f", name, v)
		}
	}
	if c.LateralBand <= 0 || c.LateralBand >= 1 {
		return fmt.Errorf("lateral_band must be in (0,1), got %f", c.LateralBand)
	}
	if c.BudgetFallbackFactor <= 0 || c.BudgetFallbackFactor > 1 {
		return fmt.Errorf("budget_fallback_factor must be in (0,1], got %f", c.BudgetFallbackFactor)
	}
	return nil
}
