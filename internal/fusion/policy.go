// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import "fmt"

// Policy selects how per-signal scores are aggregated into one fused score.
type Policy string

// Aggregation policies. The Comb* policies ignore weights and exist for
// diagnostic and ablation requests.
const (
	// PolicyWeightedSum combines weight-scaled normalized scores.
	PolicyWeightedSum Policy = "weighted_sum"

	// PolicyRRF is Reciprocal Rank Fusion: sum of weight / (k + rank).
	PolicyRRF Policy = "rrf"

	// PolicyCombSum sums normalized scores, unweighted.
	PolicyCombSum Policy = "combsum"

	// PolicyCombMax takes the maximum normalized score across signals.
	PolicyCombMax Policy = "combmax"

	// PolicyCombMin takes the minimum normalized score across the signals
	// that scored the candidate.
	PolicyCombMin Policy = "combmin"
)

// ParsePolicy validates a policy string. The empty string selects the
// default weighted sum.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyWeightedSum, nil
	case PolicyWeightedSum, PolicyRRF, PolicyCombSum, PolicyCombMax, PolicyCombMin:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("%w: unknown aggregation policy %q", ErrInvalidRequest, s)
	}
}
