// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Package catalog loads the precomputed similarity dataset and serves
// it as the engines' collaborators: the card catalog, role classifier,
// affinity tables, prices and one signal provider per populated
// section. The dataset is produced offline by the training pipeline;
// this package only reads it.
package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/signals"
)

// datasetFile is the on-disk JSON shape. All card references use the
// "game/Name" key form.
type datasetFile struct {
	Adjacency          map[string][]string                   `json:"adjacency"`
	Embeddings         map[string]map[string][]float32       `json:"embeddings"` // kind -> card -> vector
	Sideboard          map[string]map[string]float64         `json:"sideboard"`
	Temporal           map[string]map[string]map[string]float64 `json:"temporal"` // YYYY-MM -> card -> card -> weight
	ArchetypeVectors   map[string]map[string]float64         `json:"archetype_vectors"`
	FormatVectors      map[string]map[string]float64         `json:"format_vectors"`
	Roles              map[string][]string                   `json:"roles"`
	ArchetypeInclusion map[string]map[string]float64         `json:"archetype_inclusion"`
	FormatAffinity     map[string]map[string]float64         `json:"format_affinity"`
	Prices             map[string]string                     `json:"prices"`
}

// Catalog is the loaded dataset. It implements cards.CardStore,
// cards.RoleClassifier, cards.AffinityTable and cards.PriceProvider.
type Catalog struct {
	known              map[cards.CardID]struct{}
	roles              map[cards.CardID]cards.RoleSet
	archetypeInclusion map[cards.CardID]map[string]float64
	formatAffinity     map[cards.CardID]map[string]float64
	prices             map[cards.CardID]decimal.Decimal
	providers          []signals.Provider
}

// Load reads and indexes a dataset file.
func Load(path string, logger zerolog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var raw datasetFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	c := &Catalog{
		known:              make(map[cards.CardID]struct{}),
		roles:              make(map[cards.CardID]cards.RoleSet),
		archetypeInclusion: make(map[cards.CardID]map[string]float64),
		formatAffinity:     make(map[cards.CardID]map[string]float64),
		prices:             make(map[cards.CardID]decimal.Decimal),
	}
	if err := c.index(&raw); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	logger.Info().
		Str("path", path).
		Int("cards", len(c.known)).
		Int("providers", len(c.providers)).
		Msg("dataset loaded")
	return c, nil
}

func (c *Catalog) index(raw *datasetFile) error {
	parse := func(key string) (cards.CardID, error) {
		id, err := cards.ParseKey(key)
		if err != nil {
			return cards.CardID{}, err
		}
		c.known[id] = struct{}{}
		return id, nil
	}

	if len(raw.Adjacency) > 0 {
		adj := make(signals.Adjacency, len(raw.Adjacency))
		for key, neighbors := range raw.Adjacency {
			id, err := parse(key)
			if err != nil {
				return err
			}
			set := make(map[cards.CardID]struct{}, len(neighbors))
			for _, nk := range neighbors {
				nid, err := parse(nk)
				if err != nil {
					return err
				}
				set[nid] = struct{}{}
			}
			adj[id] = set
		}
		c.providers = append(c.providers, signals.NewCooccurrence(adj))
	}

	for kindName, vectors := range raw.Embeddings {
		kind := signals.Kind(kindName)
		if !signals.IsKnown(kind) {
			return fmt.Errorf("unknown embedding kind %q", kindName)
		}
		table := make(map[cards.CardID][]float32, len(vectors))
		for key, vec := range vectors {
			id, err := parse(key)
			if err != nil {
				return err
			}
			table[id] = vec
		}
		c.providers = append(c.providers, signals.NewEmbedding(kind, table))
	}

	if len(raw.Sideboard) > 0 {
		weights, err := c.parseWeights(raw.Sideboard, parse)
		if err != nil {
			return err
		}
		c.providers = append(c.providers, signals.NewSideboard(weights))
	}

	if len(raw.Temporal) > 0 {
		months := make(signals.MonthlyCooccurrence, len(raw.Temporal))
		for month, table := range raw.Temporal {
			weights, err := c.parseWeights(table, parse)
			if err != nil {
				return err
			}
			months[month] = weights
		}
		c.providers = append(c.providers, signals.NewTemporal(months))
	}

	if len(raw.ArchetypeVectors) > 0 {
		vectors, err := c.parseVectors(raw.ArchetypeVectors, parse)
		if err != nil {
			return err
		}
		c.providers = append(c.providers, signals.NewAffinity(signals.KindArchetype, vectors))
	}
	if len(raw.FormatVectors) > 0 {
		vectors, err := c.parseVectors(raw.FormatVectors, parse)
		if err != nil {
			return err
		}
		c.providers = append(c.providers, signals.NewAffinity(signals.KindFormat, vectors))
	}

	for key, tags := range raw.Roles {
		id, err := parse(key)
		if err != nil {
			return err
		}
		set := make(cards.RoleSet, len(tags))
		for _, tag := range tags {
			set[cards.RoleTag(tag)] = struct{}{}
		}
		c.roles[id] = set
	}
	if len(c.roles) > 0 {
		universe := make([]cards.CardID, 0, len(c.roles))
		for id := range c.roles {
			universe = append(universe, id)
		}
		c.providers = append(c.providers, signals.NewFunctional(c, universe))
	}

	for key, byArchetype := range raw.ArchetypeInclusion {
		id, err := parse(key)
		if err != nil {
			return err
		}
		for archetype, rate := range byArchetype {
			if rate < 0 || rate > 1 {
				return fmt.Errorf("inclusion rate for %s/%s out of [0,1]: %f", key, archetype, rate)
			}
		}
		c.archetypeInclusion[id] = byArchetype
	}
	for key, byFormat := range raw.FormatAffinity {
		id, err := parse(key)
		if err != nil {
			return err
		}
		c.formatAffinity[id] = byFormat
	}

	for key, priceStr := range raw.Prices {
		id, err := parse(key)
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return fmt.Errorf("price for %s: %w", key, err)
		}
		c.prices[id] = price
	}
	return nil
}

func (c *Catalog) parseWeights(raw map[string]map[string]float64, parse func(string) (cards.CardID, error)) (signals.CooccurrenceWeights, error) {
	weights := make(signals.CooccurrenceWeights, len(raw))
	for key, row := range raw {
		id, err := parse(key)
		if err != nil {
			return nil, err
		}
		converted := make(map[cards.CardID]float64, len(row))
		for nk, w := range row {
			nid, err := parse(nk)
			if err != nil {
				return nil, err
			}
			converted[nid] = w
		}
		weights[id] = converted
	}
	return weights, nil
}

func (c *Catalog) parseVectors(raw map[string]map[string]float64, parse func(string) (cards.CardID, error)) (signals.AffinityVectors, error) {
	vectors := make(signals.AffinityVectors, len(raw))
	for key, vec := range raw {
		id, err := parse(key)
		if err != nil {
			return nil, err
		}
		vectors[id] = vec
	}
	return vectors, nil
}

// Providers returns the signal providers built from the dataset.
func (c *Catalog) Providers() []signals.Provider {
	return c.providers
}

// Exists implements cards.CardStore against the union of every card
// mentioned anywhere in the dataset.
func (c *Catalog) Exists(_ context.Context, card cards.CardID) (bool, error) {
	_, ok := c.known[card]
	return ok, nil
}

// Roles implements cards.RoleClassifier.
func (c *Catalog) Roles(card cards.CardID) cards.RoleSet {
	return c.roles[card]
}

// ArchetypeInclusion implements cards.AffinityTable.
func (c *Catalog) ArchetypeInclusion(card cards.CardID, archetype string) (float64, bool) {
	rate, ok := c.archetypeInclusion[card][archetype]
	return rate, ok
}

// FormatAffinity implements cards.AffinityTable.
func (c *Catalog) FormatAffinity(card cards.CardID, format string) (float64, bool) {
	v, ok := c.formatAffinity[card][format]
	return v, ok
}

// ArchetypeStaples implements cards.AffinityTable.
func (c *Catalog) ArchetypeStaples(archetype string, threshold float64) map[cards.CardID]float64 {
	out := make(map[cards.CardID]float64)
	for card, byArchetype := range c.archetypeInclusion {
		if rate, ok := byArchetype[archetype]; ok && rate >= threshold {
			out[card] = rate
		}
	}
	return out
}

// Price implements cards.PriceProvider.
func (c *Catalog) Price(card cards.CardID) (decimal.Decimal, bool) {
	price, ok := c.prices[card]
	return price, ok
}
