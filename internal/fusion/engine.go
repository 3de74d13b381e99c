// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package fusion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/metrics"
	"github.com/decksage/decksage/internal/signals"
)

// Config contains operational settings for the fusion engine.
type Config struct {
	// CandidateTopN is how many raw results are pulled from each provider to
	// build the candidate pool. Independent of the final top-k.
	CandidateTopN int `koanf:"candidate_top_n"`

	// RRFConstant is the smoothing constant for reciprocal rank fusion.
	RRFConstant int `koanf:"rrf_constant"`

	// ProviderTimeout bounds each provider call. A provider that misses the
	// deadline is treated as unavailable for the request.
	ProviderTimeout time.Duration `koanf:"provider_timeout"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CandidateTopN:   100,
		RRFConstant:     60,
		ProviderTimeout: 2 * time.Second,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.CandidateTopN < 1 {
		return fmt.Errorf("candidate_top_n must be positive, got %d", c.CandidateTopN)
	}
	if c.RRFConstant < 1 {
		return fmt.Errorf("rrf_constant must be positive, got %d", c.RRFConstant)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider_timeout must be positive, got %v", c.ProviderTimeout)
	}
	return nil
}

// Request is one similarity query. Weights and policy arrive per request so a
// hot-reloaded snapshot never changes a request mid-flight.
type Request struct {
	Query   cards.CardID
	TopK    int
	Policy  Policy
	Weights Weights
}

// Engine merges the outputs of the registered signal providers into one
// ranked list. It is a pure function of its inputs plus the immutable
// provider tables, and is safe for concurrent use.
type Engine struct {
	cfg       Config
	providers []signals.Provider
	store     cards.CardStore
	logger    zerolog.Logger
}

// NewEngine creates a fusion engine over a non-empty provider list.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, providers []signals.Provider, store cards.CardStore, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	return &Engine{
		cfg:       cfg,
		providers: providers,
		store:     store,
		logger:    logger.With().Str("component", "fusion").Logger(),
	}, nil
}

// Kinds returns the signal kinds of the registered providers.
func (e *Engine) Kinds() []signals.Kind {
	kinds := make([]signals.Kind, len(e.providers))
	for i, p := range e.providers {
		kinds[i] = p.Kind()
	}
	return kinds
}

// Fuse runs one similarity query: fan out to every provider, normalize,
// redistribute weight away from unavailable signals, aggregate under the
// requested policy, sort deterministically and truncate.
func (e *Engine) Fuse(ctx context.Context, req Request) (*RankedResult, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}

	if e.store != nil {
		exists, err := e.store.Exists(ctx, req.Query)
		if err != nil {
			return nil, fmt.Errorf("card lookup: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", cards.ErrUnknownCard, req.Query)
		}
	}

	results := e.queryProviders(ctx, req.Query)
	if ctx.Err() != nil {
		return &RankedResult{Query: req.Query, Status: StatusCancelled, Entries: []Entry{}}, nil
	}

	available := make([]providerResult, 0, len(results))
	for _, r := range results {
		if r.available {
			available = append(available, r)
		}
	}
	if len(available) == 0 {
		e.logger.Debug().Str("card", req.Query.Key()).Msg("no signal available for query")
		return &RankedResult{Query: req.Query, Status: StatusNoSignal, Entries: []Entry{}}, nil
	}

	entries := e.aggregate(req, available)
	sortEntries(entries)
	if len(entries) > req.TopK {
		entries = entries[:req.TopK]
	}

	return &RankedResult{Query: req.Query, Status: StatusOK, Entries: entries}, nil
}

func (e *Engine) validateRequest(req Request) error {
	if err := req.Query.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.TopK < 1 {
		return fmt.Errorf("%w: top_k must be >= 1, got %d", ErrInvalidRequest, req.TopK)
	}
	if _, err := ParsePolicy(string(req.Policy)); err != nil {
		return err
	}
	if err := req.Weights.Validate(); err != nil {
		return err
	}
	return nil
}

// providerResult is one provider's answer for the query card.
type providerResult struct {
	kind      signals.Kind
	scores    []signals.Score
	available bool
}

// queryProviders fans out to every provider concurrently. Each call gets a
// bounded timeout; a timeout or error demotes the provider to unavailable
// for this request instead of failing it.
func (e *Engine) queryProviders(ctx context.Context, query cards.CardID) []providerResult {
	results := make([]providerResult, len(e.providers))
	var wg sync.WaitGroup

	for i, p := range e.providers {
		wg.Add(1)
		go func(idx int, provider signals.Provider) {
			defer wg.Done()
			results[idx] = e.querySingle(ctx, provider, query)
		}(i, p)
	}

	wg.Wait()
	return results
}

func (e *Engine) querySingle(ctx context.Context, provider signals.Provider, query cards.CardID) providerResult {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	kind := string(provider.Kind())
	start := time.Now()
	scores, ok, err := provider.Query(callCtx, query, e.cfg.CandidateTopN)
	metrics.SignalDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		metrics.SignalQueries.WithLabelValues(kind, "timeout").Inc()
	case err != nil:
		metrics.SignalQueries.WithLabelValues(kind, "error").Inc()
	case !ok:
		metrics.SignalQueries.WithLabelValues(kind, "unavailable").Inc()
	default:
		metrics.SignalQueries.WithLabelValues(kind, "ok").Inc()
	}

	if err != nil {
		e.logger.Warn().
			Str("signal", kind).
			Str("card", query.Key()).
			Err(err).
			Msg("signal provider failed, treating as unavailable")
		return providerResult{kind: provider.Kind()}
	}
	return providerResult{kind: provider.Kind(), scores: scores, available: ok}
}

// aggregate builds the fused entries from the available providers' scores.
func (e *Engine) aggregate(req Request, available []providerResult) []Entry {
	kinds := make([]signals.Kind, len(available))
	for i, r := range available {
		kinds[i] = r.kind
	}
	weights := req.Weights.renormalize(kinds)

	// Candidate pool: union over every available signal's list. A card
	// surfaced by a single signal is still a candidate.
	type candidate struct {
		score   float64
		signals []signals.Kind
	}
	pool := make(map[cards.CardID]*candidate)
	ensure := func(id cards.CardID) *candidate {
		c, ok := pool[id]
		if !ok {
			c = &candidate{}
			pool[id] = c
		}
		return c
	}

	for _, r := range available {
		normalized := minMaxNormalize(r.scores)
		weight := weights[r.kind]
		for i, s := range r.scores {
			c := ensure(s.Candidate)
			c.signals = append(c.signals, r.kind)

			switch req.Policy {
			case PolicyRRF:
				// Providers return scores sorted descending, so the slice
				// index is the candidate's rank within the signal.
				c.score += weight / float64(e.cfg.RRFConstant+i+1)
			case PolicyCombSum:
				c.score += normalized[i]
			case PolicyCombMax:
				if len(c.signals) == 1 || normalized[i] > c.score {
					c.score = normalized[i]
				}
			case PolicyCombMin:
				if len(c.signals) == 1 || normalized[i] < c.score {
					c.score = normalized[i]
				}
			default: // PolicyWeightedSum
				c.score += weight * normalized[i]
			}
		}
	}

	entries := make([]Entry, 0, len(pool))
	for id, c := range pool {
		entries = append(entries, Entry{Card: id, Score: c.score, Signals: c.signals})
	}
	return entries
}
