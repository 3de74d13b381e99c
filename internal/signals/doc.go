// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package signals implements similarity signal providers over precomputed
// stores.
//
// Each provider implements the signals.Provider interface and contributes one
// independent source of card-to-card similarity evidence:
//
//   - Cooccurrence: Jaccard over deck co-occurrence neighborhoods
//   - Embedding: cosine similarity in a learned vector space (also serves the
//     text-embedding and GNN kinds with different vector tables)
//   - Functional: Jaccard over functional-role tag sets
//   - Affinity: cosine over archetype or format inclusion vectors
//   - Sideboard: sideboard co-occurrence frequency
//   - Temporal: recency-weighted monthly co-occurrence
//
// Training is out of scope: every provider reads an immutable table built
// offline. A provider answers "unavailable" (ok=false) for cards missing from
// its table, which the fusion engine handles by weight redistribution, never
// by scoring zero.
//
// # Thread Safety
//
// Providers hold no mutable state after construction and are safe for
// concurrent use.
package signals
