// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package deckbuild

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/decksage/decksage/internal/cards"
)

// The boost formulas are shared by additions, removals and replacements
// so each multiplier has exactly one definition and one unit test.

// archetypeBoost returns the staple multiplier for a card's inclusion
// rate. Only staples at or above the threshold get a boost; everything
// else passes through unchanged.
func (e *Engine) archetypeBoost(card cards.CardID, archetype string) (factor float64, inclusion float64, applied bool) {
	if archetype == "" || e.affinity == nil {
		return 1, 0, false
	}
	inclusion, ok := e.affinity.ArchetypeInclusion(card, archetype)
	if !ok || inclusion < e.cfg.StapleThreshold {
		return 1, inclusion, false
	}
	return 1 + e.cfg.ArchetypeBoostFactor*inclusion, inclusion, true
}

// roleGapBoost returns the multiplier for filling the largest open
// role gap among the card's roles. The boost saturates once the gap
// reaches the configured span.
func (e *Engine) roleGapBoost(roles cards.RoleSet, gaps map[cards.RoleTag]RoleGap) (factor float64, gap RoleGap, applied bool) {
	gap, ok := largestGapFilled(roles, gaps)
	if !ok {
		return 1, RoleGap{}, false
	}
	frac := float64(gap.Size()) / e.cfg.RoleGapSpan
	if frac > 1 {
		frac = 1
	}
	return 1 + e.cfg.RoleGapBoostFactor*frac, gap, true
}

// priceBoost returns the mode-dependent multiplier comparing a
// candidate's price to the card it would replace. A missing price on
// either side means no boost, never a failure.
func (e *Engine) priceBoost(mode ReplaceMode, candidate, target cards.CardID) (factor float64, reason string, applied bool) {
	if e.prices == nil {
		return 1, "", false
	}
	cp, ok := e.prices.Price(candidate)
	if !ok {
		return 1, "", false
	}
	tp, ok := e.prices.Price(target)
	if !ok {
		return 1, "", false
	}

	switch mode {
	case ModeUpgrade:
		if cp.GreaterThan(tp) {
			return e.cfg.UpgradeBoost, fmt.Sprintf("price_upgrade (%s > %s)", cp, tp), true
		}
	case ModeDowngrade:
		if cp.LessThan(tp) {
			return e.cfg.DowngradeBoost, fmt.Sprintf("price_downgrade (%s < %s)", cp, tp), true
		}
	case ModeLateral:
		band := tp.Mul(decimal.NewFromFloat(e.cfg.LateralBand))
		if cp.Sub(tp).Abs().LessThanOrEqual(band) {
			return e.cfg.LateralBoost, fmt.Sprintf("price_lateral (%s ~ %s)", cp, tp), true
		}
	}
	return 1, "", false
}
