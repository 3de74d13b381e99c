// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/decksage/decksage/internal/cards"
	"github.com/decksage/decksage/internal/deckbuild"
	"github.com/decksage/decksage/internal/fusion"
	"github.com/decksage/decksage/internal/logging"
	"github.com/decksage/decksage/internal/metrics"
	"github.com/decksage/decksage/internal/snapshot"
)

// Handler serves the similarity and deck suggestion endpoints.
type Handler struct {
	fusion    *fusion.Engine
	deckbuild *deckbuild.Engine
	snapshots *snapshot.Store
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewHandler wires the HTTP handlers. The snapshot store is optional;
// without one, requests that omit weights fall back to uniform.
func NewHandler(fusionEngine *fusion.Engine, deckEngine *deckbuild.Engine, snapshots *snapshot.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		fusion:    fusionEngine,
		deckbuild: deckEngine,
		snapshots: snapshots,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("write response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: message, Code: code})
}

// mapError translates engine errors to HTTP responses.
func (h *Handler) mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cards.ErrUnknownCard):
		respondError(w, http.StatusNotFound, "unknown_card", err.Error())
	case errors.Is(err, fusion.ErrInvalidRequest),
		errors.Is(err, fusion.ErrInvalidWeights),
		errors.Is(err, cards.ErrInvalidCard),
		errors.Is(err, cards.ErrInvalidDeck):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal error")
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "malformed_body", "request body is not valid JSON")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return false
	}
	return true
}

// Similar handles POST /v1/similar.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	var req SimilarRequest
	if !h.decode(w, r, &req) {
		return
	}

	freq := req.toFusionRequest()
	if freq.Weights == nil && h.snapshots != nil {
		if snap := h.snapshots.Current(); snap != nil {
			freq.Weights = snap.Weights
		}
	}

	start := time.Now()
	res, err := h.fusion.Fuse(r.Context(), freq)
	if err != nil {
		h.mapError(w, err)
		return
	}
	policy := req.Policy
	if policy == "" {
		policy = string(fusion.PolicyWeightedSum)
	}
	metrics.ObserveFusion(policy, string(res.Status), time.Since(start))

	resp := SimilarResponse{
		Query:   req.Card,
		Status:  string(res.Status),
		Results: make([]SimilarResult, len(res.Entries)),
	}
	for i, entry := range res.Entries {
		kinds := make([]string, len(entry.Signals))
		for j, k := range entry.Signals {
			kinds[j] = string(k)
		}
		resp.Results[i] = SimilarResult{
			Card:    CardRef{Name: entry.Card.Name, Game: string(entry.Card.Game)},
			Score:   entry.Score,
			Signals: kinds,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// SuggestActions handles POST /v1/deck/suggest_actions.
func (h *Handler) SuggestActions(w http.ResponseWriter, r *http.Request) {
	var req SuggestActionsRequest
	if !h.decode(w, r, &req) {
		return
	}

	deck, err := req.Deck.toDeckState()
	if err != nil {
		h.mapError(w, err)
		return
	}
	budget, err := req.budget()
	if err != nil {
		h.mapError(w, err)
		return
	}
	if req.ActionType == "replace" && req.SeedCard == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "replace requires seed_card")
		return
	}

	start := time.Now()
	var actions []deckbuild.SuggestedAction
	ctx := r.Context()

	switch req.ActionType {
	case "add":
		actions, err = h.deckbuild.SuggestAdditions(ctx, deckbuild.AdditionsRequest{
			Deck:           deck,
			Archetype:      req.Archetype,
			RoleTargets:    req.roleTargets(),
			MaxSuggestions: req.TopK,
			BudgetMax:      budget,
		})
	case "remove":
		actions, err = h.deckbuild.SuggestRemovals(ctx, deckbuild.RemovalsRequest{
			Deck:           deck,
			Archetype:      req.Archetype,
			RoleTargets:    req.roleTargets(),
			PreserveRoles:  req.PreserveRoles,
			MaxSuggestions: req.TopK,
		})
	case "replace":
		actions, err = h.deckbuild.SuggestReplacements(ctx, deckbuild.ReplacementsRequest{
			Deck:           deck,
			Target:         req.SeedCard.toCardID(),
			Archetype:      req.Archetype,
			Mode:           deckbuild.ReplaceMode(req.Mode),
			MaxSuggestions: req.TopK,
		})
	case "suggest_all":
		var seed *cards.CardID
		if req.SeedCard != nil {
			id := req.SeedCard.toCardID()
			seed = &id
		}
		actions, err = h.deckbuild.SuggestAll(ctx, deckbuild.SuggestAllRequest{
			Deck:           deck,
			Archetype:      req.Archetype,
			Seed:           seed,
			Mode:           deckbuild.ReplaceMode(req.Mode),
			RoleTargets:    req.roleTargets(),
			MaxSuggestions: req.TopK,
			BudgetMax:      budget,
		})
	}
	if err != nil {
		h.mapError(w, err)
		return
	}
	metrics.ObserveSuggestion(req.ActionType, len(actions), time.Since(start))

	if actions == nil {
		actions = []deckbuild.SuggestedAction{}
	}
	respondJSON(w, http.StatusOK, SuggestActionsResponse{Actions: actions})
}

// HealthLive handles GET /healthz.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady handles GET /readyz. The service is ready once both
// engines are wired.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if h.fusion == nil || h.deckbuild == nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "engines not initialized")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
