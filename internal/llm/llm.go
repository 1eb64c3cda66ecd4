// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package llm wraps the model calls in the import pipeline: the fallback
// recipe extractor and the ingredient decomposition parser. Every call is
// attempted exactly once; retries are the caller's concern and none of the
// callers retry.
package llm

// TokenUsage is completion token accounting, passed through unmodified for
// billing and analytics.
type TokenUsage struct {
	PromptTokens     int64 `json:"promptTokens"`
	CompletionTokens int64 `json:"completionTokens"`
	TotalTokens      int64 `json:"totalTokens"`
}

// Feature names identify which product feature consumed tokens.
const (
	FeatureRecipeImport    = "recipe_import"
	FeatureIngredientParse = "ingredient_parse"
)