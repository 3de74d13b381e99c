// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import "errors"

// Sentinel errors. Invalid inputs are rejected synchronously at call time;
// missing signals and empty pools are statuses, not errors.
var (
	// ErrInvalidRequest indicates a request that fails validation
	// (top_k < 1, unknown policy).
	ErrInvalidRequest = errors.New("invalid fusion request")

	// ErrInvalidWeights indicates a weight vector with a negative weight or
	// an unknown signal kind.
	ErrInvalidWeights = errors.New("invalid fusion weights")

	// ErrNoProviders indicates an engine constructed without providers.
	ErrNoProviders = errors.New("no signal providers registered")
)
