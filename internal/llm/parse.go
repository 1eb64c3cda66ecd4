// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/larderapp/server/internal/ingredient"
)

// ParsedIngredient is one decomposed ingredient line. Unit is always one of
// the canonical abbreviations or nil; free-text units are discarded during
// normalization, never stored.
type ParsedIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

type parsedIngredients struct {
	Ingredients []ParsedIngredient `json:"ingredients"`
}

// Parser decomposes batches of ingredient lines with a completion model.
type Parser struct {
	oai   openai.Client
	model string
}

// NewParser returns a Parser using the given model.
func NewParser(oai openai.Client, model string) *Parser {
	return &Parser{oai: oai, model: model}
}

// Model is the completion model the parser bills against.
func (p *Parser) Model() string {
	return p.model
}

// Parse decomposes lines into name, quantity, and unit in one completion
// request. Premium users additionally get cooking descriptors stripped from
// names. Returned units are normalized through the shared allow-list.
func (p *Parser) Parse(ctx context.Context, lines []string, premium bool) ([]ParsedIngredient, TokenUsage, error) {
	prompt := parseIngredientsPrompt
	if premium {
		prompt += fmt.Sprintf(stripDescriptorsInstruction, strings.Join(ingredient.DescriptorWords(), ", "))
	}

	res, err := p.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(strings.Join(lines, "\n")),
		},
	})
	if err != nil {
		return nil, TokenUsage{}, fmt.Errorf("llm: parsing ingredients: %w", err)
	}

	usage := TokenUsage{
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		TotalTokens:      res.Usage.TotalTokens,
	}

	if len(res.Choices) == 0 {
		return nil, usage, fmt.Errorf("llm: empty parse response")
	}

	var parsed parsedIngredients
	content := strings.TrimSpace(res.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, usage, fmt.Errorf("llm: unmarshalling parsed ingredients: %w", err)
	}

	for i := range parsed.Ingredients {
		parsed.Ingredients[i].Unit = normalizeUnit(parsed.Ingredients[i].Unit)
	}
	return parsed.Ingredients, usage, nil
}

// normalizeUnit maps a model-returned unit to the canonical allow-list,
// discarding anything unrecognized.
func normalizeUnit(unit *string) *string {
	if unit == nil {
		return nil
	}
	canonical, ok := ingredient.NormalizeUnit(*unit)
	if !ok {
		return nil
	}
	return &canonical
}