// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched page parsed once and shared by all strategies.
type Page struct {
	// URL is the page's source URL.
	URL *url.URL

	// HTML is the raw page markup.
	HTML string

	doc *goquery.Document
}

// NewPage parses rawHTML into a Page.
func NewPage(rawHTML string, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("scrape: parsing page URL: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("scrape: parsing page HTML: %w", err)
	}
	return &Page{URL: u, HTML: rawHTML, doc: doc}, nil
}

// Domain is the page's hostname without a www prefix.
func (p *Page) Domain() string {
	return strings.TrimPrefix(p.URL.Hostname(), "www.")
}

// Title scrapes a best-effort page title, independent of which ingredient
// strategy succeeded: the document title, then og:title, then the first h1.
func (p *Page) Title() string {
	if t := strings.TrimSpace(p.doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t, ok := p.doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return strings.TrimSpace(p.doc.Find("h1").First().Text())
}

// ImageURL scrapes a best-effort lead image from og:image.
func (p *Page) ImageURL() string {
	if u, ok := p.doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return strings.TrimSpace(u)
	}
	return ""
}