// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/deckbuild"
	"github.com/decksage/decksage/internal/fusion"
	"github.com/decksage/decksage/internal/signals"
)

// fixedProvider returns the same scores for every known query.
type fixedProvider struct {
	kind   signals.Kind
	scores []signals.Score
}

func (p *fixedProvider) Kind() signals.Kind { return p.kind }

func (p *fixedProvider) Query(_ context.Context, _ cards.CardID, limit int) ([]signals.Score, bool, error) {
	scores := p.scores
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, true, nil
}

// knownCards reports only listed cards as present in the catalog.
type knownCards map[cards.CardID]bool

func (k knownCards) Exists(_ context.Context, card cards.CardID) (bool, error) {
	return k[card], nil
}

type fixedRoles map[cards.CardID]cards.RoleSet

func (f fixedRoles) Roles(card cards.CardID) cards.RoleSet { return f[card] }

func mtg(name string) cards.CardID { return cards.NewCardID(name, cards.GameMagic) }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	bolt := mtg("Lightning Bolt")
	shock := mtg("Shock")
	goyf := mtg("Tarmogoyf")

	store := knownCards{bolt: true, shock: true, goyf: true}
	provider := &fixedProvider{
		kind: signals.KindCooccurrence,
		scores: []signals.Score{
			{Candidate: shock, Raw: 0.9},
			{Candidate: goyf, Raw: 0.6},
		},
	}

	fusionEngine, err := fusion.NewEngine(fusion.DefaultConfig(), []signals.Provider{provider}, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("fusion.NewEngine: %v", err)
	}

	classifier := fixedRoles{
		bolt:  cards.NewRoleSet("removal"),
		shock: cards.NewRoleSet("removal"),
		goyf:  cards.NewRoleSet("threat"),
	}
	deckEngine, err := deckbuild.NewEngine(deckbuild.DefaultConfig(), fusionEngine, classifier, nil, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("deckbuild.NewEngine: %v", err)
	}

	h := NewHandler(fusionEngine, deckEngine, nil, zerolog.Nop())
	return NewRouter(h, RouterConfig{CORSOrigins: []string{"*"}, RateLimit: 0})
}

func postJSON(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSimilarEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/v1/similar",
		`{"card":{"name":"Lightning Bolt","game":"magic"},"top_k":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp SimilarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" || len(resp.Results) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Results[0].Card.Name != "Shock" {
		t.Errorf("ranking wrong: %+v", resp.Results)
	}
	if len(resp.Results[0].Signals) == 0 {
		t.Error("contributing signals missing")
	}
}

func TestSimilarUnknownCard(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv, "/v1/similar",
		`{"card":{"name":"Not A Card","game":"magic"},"top_k":5}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != "unknown_card" {
		t.Errorf("code = %q, want unknown_card", body.Code)
	}
}

func TestSimilarValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing card", `{"top_k":5}`},
		{"unknown game", `{"card":{"name":"X","game":"chess"}}`},
		{"bad policy", `{"card":{"name":"Lightning Bolt","game":"magic"},"policy":"median"}`},
		{"negative top_k", `{"card":{"name":"Lightning Bolt","game":"magic"},"top_k":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, srv, "/v1/similar", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSimilarNegativeWeight(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/similar",
		`{"card":{"name":"Lightning Bolt","game":"magic"},"weights":{"cooccurrence":-1}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSuggestActionsAdd(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"deck": {
			"game": "magic",
			"partitions": {"main": [{"card":{"name":"Lightning Bolt","game":"magic"},"count":4}]}
		},
		"action_type": "add",
		"top_k": 5
	}`
	rec := postJSON(t, srv, "/v1/deck/suggest_actions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp SuggestActionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Actions) == 0 {
		t.Fatal("expected add suggestions")
	}
	for _, a := range resp.Actions {
		if a.Type != deckbuild.ActionAdd {
			t.Errorf("type = %q, want add", a.Type)
		}
		if a.Reason == "" {
			t.Error("action missing reason")
		}
	}
}

func TestSuggestActionsValidation(t *testing.T) {
	srv := newTestServer(t)

	deck := `"deck":{"game":"magic","partitions":{"main":[{"card":{"name":"Lightning Bolt","game":"magic"},"count":4}]}}`
	tests := []struct {
		name string
		body string
	}{
		{"unknown action type", `{` + deck + `,"action_type":"shuffle"}`},
		{"replace without seed", `{` + deck + `,"action_type":"replace"}`},
		{"bad budget", `{` + deck + `,"action_type":"add","budget_max":"lots"}`},
		{"zero count card", `{"deck":{"game":"magic","partitions":{"main":[{"card":{"name":"X","game":"magic"},"count":0}]}},"action_type":"add"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, srv, "/v1/deck/suggest_actions", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want echo of client value", got)
	}

	// Absent ID gets generated.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID")
	}
}
