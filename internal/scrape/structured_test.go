// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPage(t *testing.T, html string) *Page {
	t.Helper()
	page, err := NewPage(html, "https://example.com/recipes/123")
	require.NoError(t, err)
	return page
}

func TestStructuredData_JSONLD(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
		{"@type":"Recipe","name":"Simple Bread","recipeIngredient":["2 cups flour","1 tsp salt"],"image":"https://example.com/bread.jpg"}
		</script>
		</head><body>
		<ul><li>unrelated nav item</li><li>another nav item</li><li>third nav item</li></ul>
		</body></html>`

	res := StructuredData().Extract(context.Background(), mustPage(t, html))
	require.NotNil(t, res.Candidate)
	assert.Equal(t, "Simple Bread", res.Candidate.Title)
	// Structured data wins over the generic li markup, strings unmodified.
	assert.Equal(t, []string{"2 cups flour", "1 tsp salt"}, res.Candidate.Ingredients)
	assert.Equal(t, "https://example.com/bread.jpg", res.Candidate.ImageURL)
}

func TestStructuredData_GraphAndTypeArray(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{"@graph":[
		{"@type":"WebPage","name":"Not a recipe"},
		{"@type":["Thing","Recipe"],"name":"Graph Soup","recipeIngredient":["1 onion","2 carrots"],"image":{"url":"https://example.com/soup.jpg"}}
	]}
	</script></head><body></body></html>`

	res := StructuredData().Extract(context.Background(), mustPage(t, html))
	require.NotNil(t, res.Candidate)
	assert.Equal(t, "Graph Soup", res.Candidate.Title)
	assert.Equal(t, []string{"1 onion", "2 carrots"}, res.Candidate.Ingredients)
	assert.Equal(t, "https://example.com/soup.jpg", res.Candidate.ImageURL)
}

func TestStructuredData_FirstCandidateWins(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">{"@type":"Recipe","name":"First","recipeIngredient":["1 egg"]}</script>
	<script type="application/ld+json">{"@type":"Recipe","name":"Second","recipeIngredient":["2 eggs"]}</script>
	</head></html>`

	res := StructuredData().Extract(context.Background(), mustPage(t, html))
	require.NotNil(t, res.Candidate)
	assert.Equal(t, "First", res.Candidate.Title)
}

func TestStructuredData_EmptyIngredientsSkipped(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">{"@type":"Recipe","name":"Empty","recipeIngredient":[]}</script>
	</head><body></body></html>`

	res := StructuredData().Extract(context.Background(), mustPage(t, html))
	assert.Nil(t, res.Candidate)
	assert.NoError(t, res.Err)
}

func TestStructuredData_Microdata(t *testing.T) {
	html := `<html><body itemscope itemtype="https://schema.org/Recipe">
	<h1 itemprop="name">Microdata Muffins</h1>
	<span itemprop="recipeIngredient">1 cup oats</span>
	<span itemprop="recipeIngredient">2 bananas</span>
	</body></html>`

	res := StructuredData().Extract(context.Background(), mustPage(t, html))
	require.NotNil(t, res.Candidate)
	assert.Equal(t, "Microdata Muffins", res.Candidate.Title)
	assert.Equal(t, []string{"1 cup oats", "2 bananas"}, res.Candidate.Ingredients)
}

func TestStructuredData_MalformedJSONIsNotFound(t *testing.T) {
	html := `<html><head><script type="application/ld+json">{not json</script></head></html>`

	res := StructuredData().Extract(context.Background(), mustPage(t, html))
	assert.Nil(t, res.Candidate)
	assert.NoError(t, res.Err)
}