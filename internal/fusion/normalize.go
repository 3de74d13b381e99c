// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import "github.com/decksage/decksage/internal/signals"

// minMaxNormalize rescales one signal's raw scores to [0, 1] within its
// candidate list. Raw scales differ across signal kinds (cosine vs. Jaccard
// vs. inclusion rate), so scores must be normalized before combination or
// one signal would dominate by scale alone.
//
// Degenerate lists (all scores equal) normalize to 1 when the shared score
// is positive, 0 otherwise: a flat positive signal still corroborates, a
// flat zero signal says nothing.
func minMaxNormalize(scores []signals.Score) []float64 {
	if len(scores) == 0 {
		return nil
	}

	minRaw, maxRaw := scores[0].Raw, scores[0].Raw
	for _, s := range scores[1:] {
		if s.Raw < minRaw {
			minRaw = s.Raw
		}
		if s.Raw > maxRaw {
			maxRaw = s.Raw
		}
	}

	out := make([]float64, len(scores))
	if maxRaw == minRaw {
		if maxRaw > 0 {
			for i := range out {
				out[i] = 1
			}
		}
		return out
	}
	span := maxRaw - minRaw
	for i, s := range scores {
		out[i] = (s.Raw - minRaw) / span
	}
	return out
}
