// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pluginSelectors are ingredient-list selectors used by common recipe-plugin
// ecosystems, tried in order before any structural guessing.
var pluginSelectors = []string{
	".wprm-recipe-ingredient",
	".wprm-recipe-ingredients li",
	".tasty-recipes-ingredients li",
	".tasty-recipes-ingredients-body li",
	".mv-create-ingredients li",
	".easyrecipe .ingredient",
	".zlrecipe-ingredients li",
	".recipe-ingredients li",
	".recipe__ingredients li",
	".ingredients-section li",
	".ingredient-list li",
	"ul.ingredients li",
}

// maxHeadingDistance bounds how many siblings past an "ingredients" heading
// we scan for the list it introduces.
const maxHeadingDistance = 10

// Heuristic extracts using generic guesses, the last local-parsing resort:
// known plugin selectors, then heading proximity, then list plausibility.
func Heuristic() Strategy {
	return Strategy{
		Name: "heuristic",
		Extract: func(_ context.Context, page *Page) Result {
			for _, extract := range []func(doc *goquery.Document) []string{
				bySelectors,
				byHeadingProximity,
				byListPlausibility,
			} {
				if ingredients := extract(page.doc); len(ingredients) > 0 {
					return Found(&Candidate{Ingredients: ingredients})
				}
			}
			return NotFound()
		},
	}
}

func bySelectors(doc *goquery.Document) []string {
	for _, sel := range pluginSelectors {
		var ingredients []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				ingredients = append(ingredients, text)
			}
		})
		if len(ingredients) > 0 {
			return ingredients
		}
	}
	return nil
}

// byHeadingProximity finds a heading mentioning ingredients and collects the
// first list within the next few siblings.
func byHeadingProximity(doc *goquery.Document) []string {
	var ingredients []string
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		text := strings.ToLower(heading.Text())
		if !strings.Contains(text, "ingredients") || strings.Contains(text, "substitutions") {
			return true
		}

		sibling := heading.Next()
		for i := 0; i < maxHeadingDistance && sibling.Length() > 0; i++ {
			list := sibling
			if !list.Is("ul, ol") {
				list = sibling.Find("ul, ol").First()
			}
			if list.Length() > 0 {
				list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
					if text := strings.TrimSpace(li.Text()); text != "" {
						ingredients = append(ingredients, text)
					}
				})
				if len(ingredients) > 0 {
					return false
				}
			}
			sibling = sibling.Next()
		}
		return true
	})
	return ingredients
}

// byListPlausibility scans every list of 3-30 items and accepts the first
// where at least 60% of items, and at least 3 absolute, pass the
// plausibility filter. All of the accepted list's items are returned, not
// only the ones that passed.
func byListPlausibility(doc *goquery.Document) []string {
	var ingredients []string
	doc.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		items := list.ChildrenFiltered("li")
		n := items.Length()
		if n < 3 || n > 30 {
			return true
		}

		var texts []string
		plausible := 0
		items.Each(func(_ int, li *goquery.Selection) {
			text := strings.TrimSpace(li.Text())
			texts = append(texts, text)
			if PlausibleIngredient(text) {
				plausible++
			}
		})

		if plausible >= 3 && float64(plausible) >= 0.6*float64(n) {
			ingredients = texts
			return false
		}
		return true
	})
	return ingredients
}