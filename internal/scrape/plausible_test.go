// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlausibleIngredient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "simple quantity line", in: "2 cups flour", want: true},
		{name: "vulgar fraction", in: "½ tsp vanilla extract", want: true},
		{name: "bare noun", in: "salt", want: true},
		{name: "empty", in: "", want: false},
		{name: "whitespace only", in: "   ", want: false},
		{name: "over hard cap", in: "1 " + strings.Repeat("x", 200), want: false},
		{
			name: "long line with leading digit still passes",
			in:   "3 " + strings.Repeat("cups of very finely milled flour ", 5) + "sifted twice",
			want: true,
		},
		{name: "section label", in: "Instructions", want: false},
		{name: "section label with digit", in: "Nutrition Facts per serving", want: false},
		{name: "prep time row", in: "Prep Time: 10 minutes", want: false},
		{name: "cuisine row", in: "Cuisine: Italian", want: false},
		{
			name: "em-dash prose",
			in:   "Butter — The foundation of the sauce and the reason this dish tastes so rich and indulgent",
			want: false,
		},
		{name: "too short bare text", in: "ab", want: false},
		{name: "all caps heading", in: "RECIPE CARD BELOW", want: false},
		{
			// 140 runes but over 150 bytes because of the accents.
			name: "accented line measured in runes",
			in:   "crème fraîche " + strings.Repeat("é", 126),
			want: true,
		},
		{name: "non-latin ingredient", in: "玉ねぎのみじん切り", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlausibleIngredient(tc.in))
		})
	}
}

// Lines within the 200-char cap that begin with a digit or vulgar fraction
// pass regardless of the 150-char bare-text bound.
func TestPlausibleIngredient_QuantityOverridesLength(t *testing.T) {
	line := "3 " + strings.Repeat("a", 188)
	assert.Less(t, len(line), 200)
	assert.True(t, PlausibleIngredient(line))

	fraction := "¾ " + strings.Repeat("b", 160)
	assert.True(t, PlausibleIngredient(fraction))
}