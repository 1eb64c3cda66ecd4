// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package parseingredients handles POST /api/ingredients/parse: decompose a
// batch of free-text ingredient lines into name, quantity, and canonical
// unit with a single model call.
package parseingredients

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/llm"
	"github.com/larderapp/server/internal/web"
)

// Parser decomposes ingredient lines into name/quantity/unit.
type Parser interface {
	Parse(ctx context.Context, lines []string, premium bool) ([]llm.ParsedIngredient, llm.TokenUsage, error)
	Model() string
}

func NewHandler(parser Parser) *Handler {
	return &Handler{parser: parser}
}

type Handler struct {
	parser Parser
}

type parseRequest struct {
	Ingredients []string `json:"ingredients"`
	UserID      string   `json:"userId"`
	IsPremium   bool     `json:"isPremium"`
}

type parseResponse struct {
	ParsedIngredients []llm.ParsedIngredient `json:"parsedIngredients"`
	Usage             llm.TokenUsage         `json:"usage"`
	UserID            string                 `json:"userId,omitempty"`
	Feature           string                 `json:"feature"`
	Model             string                 `json:"model"`
}

func (h *Handler) ParseIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Ingredients) == 0 {
		web.Error(w, "ingredients must be a non-empty array", http.StatusBadRequest)
		return
	}

	premium := req.IsPremium || auth.IsPremium(ctx)
	parsed, usage, err := h.parser.Parse(ctx, req.Ingredients, premium)
	if err != nil {
		slog.ErrorContext(ctx, "parseingredients: parsing ingredients", "error", err)
		web.Error(w, "ingredient parsing failed", http.StatusInternalServerError)
		return
	}

	web.JSON(w, parseResponse{
		ParsedIngredients: parsed,
		Usage:             usage,
		UserID:            req.UserID,
		Feature:           llm.FeatureIngredientParse,
		Model:             h.parser.Model(),
	})
}