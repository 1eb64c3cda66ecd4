// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/larderapp/server/internal/scrape"
)

// extractedRecipe is the strict JSON shape the model must return.
type extractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
}

var extractedRecipeSchema = &genai.Schema{
	Type:        "object",
	Description: "A recipe extracted from page text.",
	Required:    []string{"title", "ingredients"},
	Properties: map[string]*genai.Schema{
		"title": {
			Type:        "string",
			Description: "The title of the recipe.",
		},
		"ingredients": {
			Type:        "array",
			Description: "The ingredient lines of the recipe, one string per ingredient.",
			Items: &genai.Schema{
				Type: "string",
			},
		},
	},
}

// FallbackExtractor asks a model for the recipe when every local parsing
// strategy has come up empty.
type FallbackExtractor struct {
	genAI *genai.Client
	model string
}

// NewFallbackExtractor returns a FallbackExtractor using the given model.
func NewFallbackExtractor(genAI *genai.Client, model string) *FallbackExtractor {
	return &FallbackExtractor{genAI: genAI, model: model}
}

// Strategy adapts the extractor to the scraping cascade. Token usage from
// the completion is accumulated into usage when non-nil.
func (e *FallbackExtractor) Strategy(usage *TokenUsage) scrape.Strategy {
	return scrape.Strategy{
		Name: "ai-fallback",
		Extract: func(ctx context.Context, page *scrape.Page) scrape.Result {
			recipe, u, err := e.extract(ctx, page.HTML)
			if usage != nil {
				usage.PromptTokens += u.PromptTokens
				usage.CompletionTokens += u.CompletionTokens
				usage.TotalTokens += u.TotalTokens
			}
			if err != nil {
				return scrape.Failed(err)
			}
			if len(recipe.Ingredients) == 0 {
				return scrape.NotFound()
			}
			return scrape.Found(&scrape.Candidate{
				Title:       recipe.Title,
				Ingredients: recipe.Ingredients,
			})
		},
	}
}

func (e *FallbackExtractor) extract(ctx context.Context, rawHTML string) (extractedRecipe, TokenUsage, error) {
	var recipe extractedRecipe

	text := scrape.StripForPrompt(rawHTML)
	if text == "" {
		return recipe, TokenUsage{}, nil
	}

	res, err := e.genAI.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(extractRecipePrompt, genai.RoleModel),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    extractedRecipeSchema,
		})
	if err != nil {
		return recipe, TokenUsage{}, fmt.Errorf("llm: extracting recipe: %w", err)
	}

	usage := usageFromGenAI(res)
	if len(res.Candidates) != 1 || len(res.Candidates[0].Content.Parts) != 1 || res.Candidates[0].Content.Parts[0].Text == "" {
		return recipe, usage, fmt.Errorf("llm: unexpected extraction response: %v", res)
	}
	if err := json.Unmarshal([]byte(res.Candidates[0].Content.Parts[0].Text), &recipe); err != nil {
		return recipe, usage, fmt.Errorf("llm: unmarshalling extracted recipe: %w", err)
	}
	return recipe, usage, nil
}

func usageFromGenAI(res *genai.GenerateContentResponse) TokenUsage {
	if res == nil || res.UsageMetadata == nil {
		return TokenUsage{}
	}
	return TokenUsage{
		PromptTokens:     int64(res.UsageMetadata.PromptTokenCount),
		CompletionTokens: int64(res.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int64(res.UsageMetadata.TotalTokenCount),
	}
}