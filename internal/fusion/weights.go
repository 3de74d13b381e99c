// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import (
	"fmt"

	"github.com/decksage/decksage/internal/signals"
)

// Weights is a per-signal weight vector. Weights do not need to sum to one;
// the engine normalizes at combination time and never assumes the caller
// pre-normalized. A Weights value is an immutable snapshot: "updating
// weights" means constructing a new snapshot, never mutating in place.
type Weights map[signals.Kind]float64

// Validate rejects negative weights and unknown signal kinds. Called at
// snapshot load time so malformed entries never reach a request.
func (w Weights) Validate() error {
	for kind, weight := range w {
		if !signals.IsKnown(kind) {
			return fmt.Errorf("%w: unknown signal kind %q", ErrInvalidWeights, kind)
		}
		if weight < 0 {
			return fmt.Errorf("%w: signal %q has negative weight %f", ErrInvalidWeights, kind, weight)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	cp := make(Weights, len(w))
	for k, v := range w {
		cp[k] = v
	}
	return cp
}

// renormalize returns the weights restricted to the available signal kinds,
// rescaled to sum to 1. An unavailable signal's weight is redistributed
// proportionally across the remaining signals: excluded, never zeroed.
// When every available signal has weight zero the mass is spread uniformly so
// diagnostic requests with sparse weight vectors still rank.
func (w Weights) renormalize(available []signals.Kind) map[signals.Kind]float64 {
	out := make(map[signals.Kind]float64, len(available))
	var sum float64
	for _, kind := range available {
		weight := w[kind]
		out[kind] = weight
		sum += weight
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(available))
		for _, kind := range available {
			out[kind] = uniform
		}
		return out
	}
	for kind := range out {
		out[kind] /= sum
	}
	return out
}

// DefaultWeights mirrors the recommended hybrid configuration: graph-learned
// signals carry the most mass, direct co-occurrence and role tags less.
func DefaultWeights() Weights {
	return Weights{
		signals.KindGNN:           0.30,
		signals.KindTextEmbedding: 0.25,
		signals.KindEmbedding:     0.20,
		signals.KindCooccurrence:  0.15,
		signals.KindFunctional:    0.10,
	}
}
