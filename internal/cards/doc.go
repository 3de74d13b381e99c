// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package cards defines the core card-game data model and the contracts of
// the external collaborators the engines consume.
//
// # Identity
//
// A CardID is a (name, game) pair. Equality and hashing are always defined on
// the pair, never on the name alone, so cards with the same name in different
// games never collide.
//
// # Deck State
//
// A DeckState is a set of named partitions (main, side), each an unordered
// multiset of cards. Construction validates counts and game consistency and
// collapses duplicate entries. Engines treat deck states as read-only views:
// suggestion operations return proposed actions and never apply them.
//
// # Collaborators
//
// CardStore, DeckStore, RoleClassifier, AffinityTable and PriceProvider are
// implemented outside this module (catalog, storage and enrichment layers).
// This package only fixes their contracts so the engines stay pluggable.
package cards
