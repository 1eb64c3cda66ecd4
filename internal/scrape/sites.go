// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// siteExtractors maps a hostname (without www) to a scraper tuned for that
// site's layout. Tried only when structured data is absent.
var siteExtractors = map[string]func(page *Page) *Candidate{
	"natashaskitchen.com": extractUSCustomarySections,
}

// SiteSpecific extracts using a per-domain heuristic when one is registered
// for the page's host.
func SiteSpecific() Strategy {
	return Strategy{
		Name: "site-specific",
		Extract: func(_ context.Context, page *Page) Result {
			extract, ok := siteExtractors[page.Domain()]
			if !ok {
				return NotFound()
			}
			if c := extract(page); c != nil {
				return Found(c)
			}
			return NotFound()
		},
	}
}

// extractUSCustomarySections scrapes a cooking-blog layout that presents
// ingredients under "US Customary" section headings, one list per section.
// Lines failing the shared plausibility filter are dropped so toggle labels
// and unit-switcher chrome never leak into the result.
func extractUSCustomarySections(page *Page) *Candidate {
	var ingredients []string
	page.doc.Find("h2, h3, h4, legend, div").Each(func(_ int, s *goquery.Selection) {
		if !strings.EqualFold(strings.TrimSpace(s.Text()), "US Customary") {
			return
		}
		list := s.NextAllFiltered("ul, ol").First()
		if list.Length() == 0 {
			list = s.Parent().Find("ul, ol").First()
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			text := strings.TrimSpace(li.Text())
			if PlausibleIngredient(text) {
				ingredients = append(ingredients, text)
			}
		})
	})
	if len(ingredients) == 0 {
		return nil
	}
	return &Candidate{Ingredients: ingredients}
}