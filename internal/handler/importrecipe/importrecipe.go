// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package importrecipe handles POST /api/recipes/import: fetch a recipe
// page and run the extraction strategies over it, falling back to a model
// call only when every local strategy comes up empty.
package importrecipe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/llm"
	"github.com/larderapp/server/internal/scrape"
	"github.com/larderapp/server/internal/web"
)

// Fetcher fetches the raw bytes of a recipe page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Fallback supplies the model-backed extraction strategy that runs after the
// local strategies are exhausted.
type Fallback interface {
	Strategy(usage *llm.TokenUsage) scrape.Strategy
}

// Parser decomposes ingredient lines into name/quantity/unit.
type Parser interface {
	Parse(ctx context.Context, lines []string, premium bool) ([]llm.ParsedIngredient, llm.TokenUsage, error)
}

func NewHandler(fetcher Fetcher, fallback Fallback, parser Parser) *Handler {
	return &Handler{
		fetcher:  fetcher,
		fallback: fallback,
		parser:   parser,
	}
}

type Handler struct {
	fetcher  Fetcher
	fallback Fallback
	parser   Parser
}

type importRequest struct {
	URL       string `json:"url"`
	UserID    string `json:"userId"`
	IsPremium bool   `json:"isPremium"`
}

type importResponse struct {
	Title             string                 `json:"title"`
	Ingredients       []string               `json:"ingredients"`
	ImageURL          string                 `json:"imageUrl,omitempty"`
	SourceURL         string                 `json:"sourceUrl"`
	SourceDomain      string                 `json:"sourceDomain"`
	ParsedIngredients []llm.ParsedIngredient `json:"parsedIngredients,omitempty"`
	Usage             *llm.TokenUsage        `json:"usage,omitempty"`
}

func (h *Handler) ImportRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		web.Error(w, "url must be a valid http(s) URL", http.StatusBadRequest)
		return
	}

	body, err := h.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		slog.ErrorContext(ctx, "importrecipe: fetching page", "url", req.URL, "error", err)
		web.Error(w, "could not fetch recipe page", http.StatusInternalServerError)
		return
	}
	page, err := scrape.NewPage(string(body), req.URL)
	if err != nil {
		slog.ErrorContext(ctx, "importrecipe: parsing page", "url", req.URL, "error", err)
		web.Error(w, "could not parse recipe page", http.StatusInternalServerError)
		return
	}

	var usage llm.TokenUsage
	pipeline := scrape.NewPipeline(
		scrape.StructuredData(),
		scrape.SiteSpecific(),
		scrape.Heuristic(),
		h.fallback.Strategy(&usage),
	)
	candidate, strategy, err := pipeline.Extract(ctx, page)
	if err != nil {
		if errors.Is(err, scrape.ErrNoIngredients) {
			web.Error(w, "no extractable ingredients found", http.StatusUnprocessableEntity)
			return
		}
		slog.ErrorContext(ctx, "importrecipe: extracting recipe", "url", req.URL, "error", err)
		web.Error(w, "recipe extraction failed", http.StatusInternalServerError)
		return
	}
	slog.InfoContext(ctx, "importrecipe: extracted recipe",
		"url", req.URL, "strategy", strategy, "ingredients", len(candidate.Ingredients))

	res := importResponse{
		Title:        candidate.Title,
		Ingredients:  candidate.Ingredients,
		ImageURL:     candidate.ImageURL,
		SourceURL:    req.URL,
		SourceDomain: page.Domain(),
	}
	if res.Title == "" {
		res.Title = page.Title()
	}
	if res.ImageURL == "" {
		res.ImageURL = page.ImageURL()
	}

	// Decomposition is best effort. A parse failure does not fail the import.
	premium := req.IsPremium || auth.IsPremium(ctx)
	parsed, parseUsage, err := h.parser.Parse(ctx, candidate.Ingredients, premium)
	if err != nil {
		slog.WarnContext(ctx, "importrecipe: parsing ingredients", "url", req.URL, "error", err)
	} else {
		res.ParsedIngredients = parsed
		usage.PromptTokens += parseUsage.PromptTokens
		usage.CompletionTokens += parseUsage.CompletionTokens
		usage.TotalTokens += parseUsage.TotalTokens
	}
	if usage.TotalTokens > 0 {
		res.Usage = &usage
	}

	web.JSON(w, res)
}