// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package fusion merges heterogeneous similarity signals into one ranked,
// explainable result.
//
// # Pipeline
//
// For a query card the engine:
//
//  1. Fans out to every registered signal provider concurrently, with a
//     bounded per-provider timeout.
//  2. Unions the available providers' top-N candidates into one pool.
//  3. Min-max normalizes each signal's raw scores within the pool.
//  4. Redistributes the weight of unavailable signals proportionally across
//     the remaining ones — a missing signal is excluded, never zeroed.
//  5. Aggregates under the requested policy (weighted sum, RRF, or one of
//     the unweighted Comb* diagnostics).
//  6. Sorts by fused score with deterministic tie-breaks (corroboration
//     count, then card key) and truncates to top-k.
//
// # Degradation
//
// All providers unavailable yields an empty result with StatusNoSignal;
// caller cancellation yields StatusCancelled. Neither is an error. Unknown
// cards and invalid requests (top_k = 0, negative weight, unknown policy)
// are errors, rejected before any provider work.
//
// # Determinism
//
// Given identical inputs, Fuse produces byte-identical orderings and
// scores: no race-dependent tie-breaks, no randomness.
package fusion
