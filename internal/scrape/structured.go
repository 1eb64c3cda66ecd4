// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// recipeSchema is the subset of a schema.org/Recipe node we read.
type recipeSchema struct {
	Type             any               `json:"@type"`
	Name             string            `json:"name"`
	Image            any               `json:"image"`
	RecipeIngredient []string          `json:"recipeIngredient"`
	Graph            []json.RawMessage `json:"@graph"`
}

// StructuredData extracts a recipe from JSON-LD blocks, falling back to
// microdata attributes. The first candidate with a non-empty ingredient list
// wins; there is no ranking among multiple candidates.
func StructuredData() Strategy {
	return Strategy{
		Name: "structured-data",
		Extract: func(_ context.Context, page *Page) Result {
			if c := extractJSONLD(page.doc); c != nil {
				return Found(c)
			}
			if c := extractMicrodata(page.doc); c != nil {
				return Found(c)
			}
			return NotFound()
		},
	}
}

func extractJSONLD(doc *goquery.Document) *Candidate {
	var candidate *Candidate
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if c := parseJSONLD([]byte(s.Text())); c != nil {
			candidate = c
			return false
		}
		return true
	})
	return candidate
}

// parseJSONLD decodes one ld+json block, which may be a single node, a
// top-level array, or a WordPress-style @graph wrapper.
func parseJSONLD(data []byte) *Candidate {
	var node recipeSchema
	if err := json.Unmarshal(data, &node); err == nil {
		if c := candidateFromSchema(node); c != nil {
			return c
		}
		for _, raw := range node.Graph {
			if c := parseJSONLD(raw); c != nil {
				return c
			}
		}
	}

	var nodes []json.RawMessage
	if err := json.Unmarshal(data, &nodes); err == nil {
		for _, raw := range nodes {
			if c := parseJSONLD(raw); c != nil {
				return c
			}
		}
	}
	return nil
}

func candidateFromSchema(node recipeSchema) *Candidate {
	if !isRecipeType(node.Type) || len(node.RecipeIngredient) == 0 {
		return nil
	}
	ingredients := make([]string, 0, len(node.RecipeIngredient))
	for _, ing := range node.RecipeIngredient {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		return nil
	}
	return &Candidate{
		Title:       strings.TrimSpace(node.Name),
		Ingredients: ingredients,
		ImageURL:    schemaImageURL(node.Image),
	}
}

// isRecipeType accepts @type as either a string or an array of strings.
func isRecipeType(typ any) bool {
	switch v := typ.(type) {
	case string:
		return strings.EqualFold(v, "Recipe")
	case []any:
		for _, t := range v {
			if s, ok := t.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

// schemaImageURL reads the image field, which sites publish as a URL string,
// an array of URLs, or an ImageObject.
func schemaImageURL(image any) string {
	switch v := image.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return schemaImageURL(v[0])
		}
	case map[string]any:
		if u, ok := v["url"].(string); ok {
			return u
		}
	}
	return ""
}

func extractMicrodata(doc *goquery.Document) *Candidate {
	var ingredients []string
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			ingredients = append(ingredients, text)
		}
	})
	if len(ingredients) == 0 {
		return nil
	}
	title := strings.TrimSpace(doc.Find(`[itemprop="name"]`).First().Text())
	return &Candidate{Title: title, Ingredients: ingredients}
}