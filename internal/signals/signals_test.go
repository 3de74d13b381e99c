// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package signals

import (
	"context"
	"math"
	"testing"

	"github.com/decksage/decksage/internal/cards"
)

func mtg(name string) cards.CardID {
	return cards.NewCardID(name, cards.GameMagic)
}

// stubClassifier implements cards.RoleClassifier over a fixed map.
type stubClassifier map[cards.CardID]cards.RoleSet

func (s stubClassifier) Roles(card cards.CardID) cards.RoleSet { return s[card] }

func TestCooccurrenceQuery(t *testing.T) {
	bolt, shock, push, counter := mtg("Lightning Bolt"), mtg("Shock"), mtg("Fatal Push"), mtg("Counterspell")

	adj := Adjacency{
		bolt:  {shock: {}, push: {}},
		shock: {bolt: {}, push: {}},
		push:  {bolt: {}, shock: {}},
	}
	p := NewCooccurrence(adj)

	if p.Kind() != KindCooccurrence {
		t.Fatalf("Kind = %q", p.Kind())
	}

	scores, ok, err := p.Query(context.Background(), bolt, 10)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(scores))
	}
	for _, s := range scores {
		if s.Candidate == bolt {
			t.Error("query card must not appear in its own results")
		}
		if s.Raw < 0 || s.Raw > 1 {
			t.Errorf("jaccard out of range: %f", s.Raw)
		}
	}

	// Unknown card is unavailable, not empty.
	_, ok, err = p.Query(context.Background(), counter, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if ok {
		t.Error("card absent from adjacency must be unavailable")
	}
}

func TestCooccurrenceLimit(t *testing.T) {
	hub := mtg("Hub")
	adj := Adjacency{hub: {}}
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		id := mtg(n)
		adj[hub][id] = struct{}{}
		adj[id] = map[cards.CardID]struct{}{hub: {}}
	}

	scores, ok, err := NewCooccurrence(adj).Query(context.Background(), hub, 3)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	if len(scores) != 3 {
		t.Errorf("limit not applied: got %d", len(scores))
	}
}

func TestEmbeddingQuery(t *testing.T) {
	a, b, c := mtg("A"), mtg("B"), mtg("C")
	vectors := map[cards.CardID][]float32{
		a: {1, 0},
		b: {1, 0},  // identical direction to a
		c: {-1, 0}, // opposite
	}
	p := NewEmbedding(KindEmbedding, vectors)

	scores, ok, err := p.Query(context.Background(), a, 10)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].Candidate != b {
		t.Errorf("expected parallel vector first, got %v", scores[0].Candidate)
	}
	if math.Abs(scores[0].Raw-1.0) > 1e-9 {
		t.Errorf("cosine 1 should map to raw 1, got %f", scores[0].Raw)
	}
	if math.Abs(scores[1].Raw-0.0) > 1e-9 {
		t.Errorf("cosine -1 should map to raw 0, got %f", scores[1].Raw)
	}

	if _, ok, _ := p.Query(context.Background(), mtg("missing"), 10); ok {
		t.Error("card without vector must be unavailable")
	}
}

func TestEmbeddingServesMultipleKinds(t *testing.T) {
	vectors := map[cards.CardID][]float32{mtg("A"): {1}}
	if got := NewEmbedding(KindGNN, vectors).Kind(); got != KindGNN {
		t.Errorf("Kind = %q, want %q", got, KindGNN)
	}
	if got := NewEmbedding(KindTextEmbedding, vectors).Kind(); got != KindTextEmbedding {
		t.Errorf("Kind = %q, want %q", got, KindTextEmbedding)
	}
}

func TestFunctionalQuery(t *testing.T) {
	bolt, push, bear := mtg("Lightning Bolt"), mtg("Fatal Push"), mtg("Grizzly Bears")
	classifier := stubClassifier{
		bolt: cards.NewRoleSet("removal", "burn"),
		push: cards.NewRoleSet("removal"),
		bear: cards.NewRoleSet("threat"),
	}
	p := NewFunctional(classifier, []cards.CardID{bolt, push, bear})

	scores, ok, err := p.Query(context.Background(), bolt, 10)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	// Only push shares a role; bear is filtered (similarity 0).
	if len(scores) != 1 || scores[0].Candidate != push {
		t.Fatalf("expected only Fatal Push, got %v", scores)
	}

	// Untagged card is unavailable under this signal.
	if _, ok, _ := p.Query(context.Background(), mtg("Unknown"), 10); ok {
		t.Error("untagged card must be unavailable")
	}
}

func TestAffinityQuery(t *testing.T) {
	a, b, c := mtg("A"), mtg("B"), mtg("C")
	vectors := AffinityVectors{
		a: {"burn": 0.9, "prowess": 0.4},
		b: {"burn": 0.8, "prowess": 0.5},
		c: {"control": 1.0},
	}
	p := NewAffinity(KindArchetype, vectors)

	scores, ok, err := p.Query(context.Background(), a, 10)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	if len(scores) != 1 || scores[0].Candidate != b {
		t.Fatalf("expected only B (shared archetypes), got %v", scores)
	}
	if scores[0].Raw <= 0 || scores[0].Raw > 1 {
		t.Errorf("cosine out of range: %f", scores[0].Raw)
	}
}

func TestSideboardQuery(t *testing.T) {
	a, b := mtg("A"), mtg("B")
	p := NewSideboard(CooccurrenceWeights{a: {b: 0.6}})

	scores, ok, err := p.Query(context.Background(), a, 10)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	if len(scores) != 1 || scores[0].Raw != 0.6 {
		t.Fatalf("unexpected scores: %v", scores)
	}
}

func TestTemporalRecencyWeighting(t *testing.T) {
	a, b, c := mtg("A"), mtg("B"), mtg("C")
	// b co-occurs only in the oldest month, c only in the newest. With
	// linear recency weights over a 3-month window, c must outrank b.
	months := MonthlyCooccurrence{
		"2026-05": {a: {b: 0.9}},
		"2026-06": {},
		"2026-07": {a: {c: 0.9}},
	}
	p := NewTemporal(months)

	scores, ok, err := p.Query(context.Background(), a, 10)
	if err != nil || !ok {
		t.Fatalf("Query: ok=%v err=%v", ok, err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].Candidate != c {
		t.Errorf("recent co-occurrence should rank first, got %v", scores[0].Candidate)
	}
}

func TestTemporalUnavailableOutsideWindow(t *testing.T) {
	a, b := mtg("A"), mtg("B")
	// a only co-occurs in a month older than the trailing window.
	months := MonthlyCooccurrence{
		"2025-01": {a: {b: 1.0}},
		"2026-05": {},
		"2026-06": {},
		"2026-07": {},
	}
	if _, ok, _ := NewTemporal(months).Query(context.Background(), a, 10); ok {
		t.Error("card with no recent co-occurrence must be unavailable")
	}
}
