// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package scrape extracts recipe candidates from third-party web pages. The
// markup of the targets is unversioned, so everything here is best effort:
// strategies report not-found rather than failing, and a single dispatcher
// decides when the whole cascade is exhausted.
package scrape

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"
)

// StatusError is returned when a page fetch completes with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scrape: fetching %s: status %d", e.URL, e.StatusCode)
}

// Fetcher retrieves pages with the configured user agent.
type Fetcher struct {
	baseCollector *colly.Collector
}

// NewFetcher returns a Fetcher sharing the base collector's settings.
func NewFetcher(baseCollector *colly.Collector) *Fetcher {
	return &Fetcher{baseCollector: baseCollector}
}

// Fetch retrieves pageURL and returns the raw response body. Non-2xx
// responses are surfaced as a StatusError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	// Avoid clone since we don't want to share storage.
	c := colly.NewCollector(
		colly.UserAgent(f.baseCollector.UserAgent),
		colly.StdlibContext(ctx),
	)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var statusErr error
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil && r.StatusCode != 0 {
			statusErr = &StatusError{URL: pageURL, StatusCode: r.StatusCode}
		}
	})

	if err := c.Visit(pageURL); err != nil {
		if statusErr != nil {
			return nil, statusErr
		}
		return nil, fmt.Errorf("scrape: fetching %s: %w", pageURL, err)
	}
	return body, nil
}