// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package shelflife scrapes a food storage-life reference site. Like the
// recipe targets, the site's markup is unversioned, so extraction is a
// best-effort scan ending in not-found rather than guesses.
package shelflife

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound is returned when the site has no entry for the food, or the
// entry has no duration for the requested storage type.
var ErrNotFound = errors.New("shelflife: no match found")

// StorageTypes are the storage locations the reference site distinguishes.
var StorageTypes = []string{"refrigerator", "freezer", "pantry"}

// DefaultStorageType is assumed when a lookup does not specify one.
const DefaultStorageType = "refrigerator"

// Result is a scraped shelf-life answer.
type Result struct {
	FoodName    string `json:"foodName"`
	StorageType string `json:"storageType"`
	Days        int    `json:"days"`
	Source      string `json:"source"`
}

// PageFetcher retrieves a page body by URL.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Scraper looks up shelf lives on the configured reference site.
type Scraper struct {
	fetcher PageFetcher
	baseURL string
}

// NewScraper returns a Scraper for the site at baseURL.
func NewScraper(fetcher PageFetcher, baseURL string) *Scraper {
	return &Scraper{fetcher: fetcher, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Lookup searches the site for foodName and scrapes the duration for
// storageType from the first result.
func (s *Scraper) Lookup(ctx context.Context, foodName, storageType string) (*Result, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, url.QueryEscape(foodName))
	body, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("shelflife: fetching search page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("shelflife: parsing search page: %w", err)
	}

	href, ok := doc.Find(".search-results a, .results a, a.result").First().Attr("href")
	if !ok {
		return nil, ErrNotFound
	}
	itemURL := href
	if strings.HasPrefix(href, "/") {
		itemURL = s.baseURL + href
	}

	body, err = s.fetcher.Fetch(ctx, itemURL)
	if err != nil {
		return nil, fmt.Errorf("shelflife: fetching item page: %w", err)
	}
	itemDoc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("shelflife: parsing item page: %w", err)
	}

	days, ok := extractDays(itemDoc, storageType)
	if !ok {
		return nil, ErrNotFound
	}
	return &Result{
		FoodName:    foodName,
		StorageType: storageType,
		Days:        days,
		Source:      itemURL,
	}, nil
}

// extractDays scans for a block mentioning the storage type and parses the
// first duration in it.
func extractDays(doc *goquery.Document, storageType string) (int, bool) {
	days := 0
	found := false
	doc.Find("p, li, td, div, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		// Skip container elements so we land on the leaf block.
		if s.Children().Length() > 0 {
			return true
		}
		text := s.Text()
		if !strings.Contains(strings.ToLower(text), storageType) {
			return true
		}
		if d, ok := ParseDurationDays(text); ok {
			days = d
			found = true
			return false
		}
		return true
	})
	return days, found
}

var durationPattern = regexp.MustCompile(`(?i)(\d+)(?:\s*(?:-|–|to)\s*(\d+))?\s*(day|week|month|year)s?`)

// ParseDurationDays converts text like "3-5 days" or "2 months" to a day
// count, using the upper bound of a range.
func ParseDurationDays(text string) (int, bool) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		if upper, err := strconv.Atoi(m[2]); err == nil {
			n = upper
		}
	}
	switch strings.ToLower(m[3]) {
	case "week":
		n *= 7
	case "month":
		n *= 30
	case "year":
		n *= 365
	}
	return n, true
}