// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(name string, res Result) Strategy {
	return Strategy{
		Name:    name,
		Extract: func(context.Context, *Page) Result { return res },
	}
}

func recording(name string, res Result, calls *[]string) Strategy {
	return Strategy{
		Name: name,
		Extract: func(context.Context, *Page) Result {
			*calls = append(*calls, name)
			return res
		},
	}
}

func TestPipeline_FirstFoundShortCircuits(t *testing.T) {
	var calls []string
	p := NewPipeline(
		recording("a", NotFound(), &calls),
		recording("b", Found(&Candidate{Ingredients: []string{"1 egg"}}), &calls),
		recording("c", Found(&Candidate{Ingredients: []string{"never"}}), &calls),
	)

	c, name, err := p.Extract(context.Background(), mustPage(t, "<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "b", name)
	assert.Equal(t, []string{"1 egg"}, c.Ingredients)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestPipeline_MidStrategyErrorIsNonFatal(t *testing.T) {
	p := NewPipeline(
		fixed("a", Failed(errors.New("boom"))),
		fixed("b", Found(&Candidate{Ingredients: []string{"1 egg"}})),
	)

	c, name, err := p.Extract(context.Background(), mustPage(t, "<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "b", name)
	assert.NotNil(t, c)
}

func TestPipeline_LastStrategyErrorSurfaces(t *testing.T) {
	wantErr := errors.New("upstream unavailable")
	p := NewPipeline(
		fixed("a", NotFound()),
		fixed("b", Failed(wantErr)),
	)

	c, name, err := p.Extract(context.Background(), mustPage(t, "<html></html>"))
	assert.Nil(t, c)
	assert.Equal(t, "b", name)
	assert.ErrorIs(t, err, wantErr)
}

func TestPipeline_ExhaustionReturnsNoIngredients(t *testing.T) {
	p := NewPipeline(fixed("a", NotFound()), fixed("b", NotFound()))

	c, _, err := p.Extract(context.Background(), mustPage(t, "<html></html>"))
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNoIngredients)
}

// A candidate with an empty ingredient list does not satisfy the pipeline.
func TestPipeline_EmptyCandidateTreatedAsNotFound(t *testing.T) {
	p := NewPipeline(
		fixed("a", Found(&Candidate{Title: "title only"})),
		fixed("b", Found(&Candidate{Ingredients: []string{"1 egg"}})),
	)

	_, name, err := p.Extract(context.Background(), mustPage(t, "<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "b", name)
}

func TestStripForPrompt(t *testing.T) {
	html := `<html><head><style>body { color: red }</style>
	<script>var x = "<li>not content</li>";</script></head>
	<body><h1>Stew</h1><p>1 onion &amp; 2 carrots</p></body></html>`

	text := StripForPrompt(html)
	assert.Equal(t, `Stew 1 onion & 2 carrots`, text)
}

func TestStripForPrompt_Truncates(t *testing.T) {
	text := StripForPrompt("<p>" + strings.Repeat("word ", 5000) + "</p>")
	assert.Len(t, text, maxPromptChars)
}

func TestStripForPrompt_TruncatesAtRuneBoundary(t *testing.T) {
	// é is two bytes, so the raw budget lands mid-rune and the cut has to
	// back up to keep the output valid UTF-8.
	text := StripForPrompt("<p>" + strings.Repeat("é", maxPromptChars) + "</p>")
	assert.True(t, utf8.ValidString(text))
	assert.LessOrEqual(t, len(text), maxPromptChars)
}