// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package deckbuild proposes deck edits: additions, removals and
// replacements for a given deck state.
//
// The engine consumes the fusion engine as its scoring oracle. An
// additions search treats the deck as a multi-seed similarity query
// (max-merging scores across seeds), unions in archetype staples, then
// boosts each candidate by staple status and by the largest open role
// gap it fills. Removals flag non-staples, weak staples and role
// redundancy. Replacements restrict similarity results to functional
// alternatives of the target card and apply a price boost matching the
// requested mode (upgrade, downgrade or lateral).
//
// Every operation is a pure read: the input DeckState is never
// mutated, and each returned action carries a human-readable reason
// naming the rules and boosts that produced its score. Applying the
// actions, and full format legality, belong to the caller.
package deckbuild
