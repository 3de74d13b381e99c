// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package snapshot manages the hot-reloadable fusion weight snapshot.
//
// The snapshot is loaded once at startup and swapped atomically on
// reload, never mutated in place, so every in-flight request sees one
// consistent weight vector. A malformed snapshot file is rejected at
// load time and the previous snapshot stays live.
package snapshot

import (
	"fmt"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/decksage/decksage/internal/fusion"
	"github.com/decksage/decksage/internal/metrics"
	"github.com/decksage/decksage/internal/signals"
)

// Snapshot is one immutable weight configuration.
type Snapshot struct {
	Weights fusion.Weights
}

// Store holds the current snapshot behind an atomic pointer.
type Store struct {
	current atomic.Pointer[Snapshot]
	logger  zerolog.Logger
}

// NewStore creates a store seeded with the given snapshot.
func NewStore(initial *Snapshot, logger zerolog.Logger) *Store {
	s := &Store{logger: logger.With().Str("component", "snapshot").Logger()}
	s.current.Store(initial)
	return s
}

// Current returns the live snapshot. The returned snapshot must be
// treated as read-only; requests clone weights when they need to
// modify them.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap atomically replaces the live snapshot.
func (s *Store) Swap(next *Snapshot) {
	s.current.Store(next)
}

// LoadFile parses a weight snapshot from a YAML file: a flat mapping of
// signal kind to non-negative weight. Unknown kinds and negative
// weights are rejected here, not at request time.
func LoadFile(path string) (*Snapshot, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load weight snapshot %s: %w", path, err)
	}

	raw := map[string]float64{}
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, fmt.Errorf("parse weight snapshot %s: %w", path, err)
	}

	weights := make(fusion.Weights, len(raw))
	for kind, weight := range raw {
		weights[signals.Kind(kind)] = weight
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("weight snapshot %s: %w", path, err)
	}
	return &Snapshot{Weights: weights}, nil
}

// Watch reloads the snapshot whenever the file changes. A reload that
// fails validation is logged and dropped; the previous snapshot stays
// live.
func (s *Store) Watch(path string) error {
	provider := file.Provider(path)
	return provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			metrics.SnapshotReloads.WithLabelValues("watch_error").Inc()
			s.logger.Error().Err(err).Str("path", path).Msg("snapshot watch error")
			return
		}
		next, err := LoadFile(path)
		if err != nil {
			metrics.SnapshotReloads.WithLabelValues("rejected").Inc()
			s.logger.Error().Err(err).Str("path", path).Msg("snapshot reload rejected, keeping previous")
			return
		}
		s.Swap(next)
		metrics.SnapshotReloads.WithLabelValues("ok").Inc()
		s.logger.Info().Str("path", path).Int("kinds", len(next.Weights)).Msg("weight snapshot reloaded")
	})
}
