// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/larderapp/server/internal/ingredient"
)

// sectionLabelWords mark scraped lines that are page chrome rather than
// ingredients. A line containing any of them is never an ingredient, even
// when it starts with a quantity.
var sectionLabelWords = []string{
	"instructions",
	"directions",
	"method",
	"prep time",
	"cook time",
	"servings",
	"course",
	"cuisine",
	"metric",
	"customary",
	"nutrition",
}

// proseExplanation matches an em-dash followed by a long capitalized
// explanation, the shape of descriptive prose rather than an ingredient line.
var proseExplanation = regexp.MustCompile(`—\s*[A-Z][^—]{40,}`)

// headingLike matches runs of capital letters and spaces long enough to be a
// shouting section heading.
var headingLike = regexp.MustCompile(`[A-Z ]{10,}`)

// PlausibleIngredient reports whether a line of scraped text is probably an
// ingredient. The site-specific and generic extractors share this predicate
// so a line is judged identically on every path.
func PlausibleIngredient(line string) bool {
	s := strings.TrimSpace(line)
	// Length bounds count runes so non-Latin lines get the same budget.
	length := utf8.RuneCountInString(s)
	if length == 0 || length > 200 {
		return false
	}

	lower := strings.ToLower(s)
	for _, w := range sectionLabelWords {
		if strings.Contains(lower, w) {
			return false
		}
	}

	if proseExplanation.MatchString(s) {
		return false
	}

	if startsWithQuantity(s) {
		return true
	}

	return length >= 3 && length <= 150 && !headingLike.MatchString(s)
}

func startsWithQuantity(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
		_, vulgar := ingredient.VulgarFractions[r]
		return vulgar
	}
	return false
}