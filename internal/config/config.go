// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Scrape struct {
	// UserAgent is the user agent sent with all scraping requests, e.g.
	// Mozilla/5.0 (compatible; LarderBot/1.0).
	UserAgent string `koanf:"useragent"`
}

type Models struct {
	// Extract is the Gemini model used for the recipe extraction fallback.
	Extract string `koanf:"extract"`

	// Parse is the model used for ingredient decomposition.
	Parse string `koanf:"parse"`
}

type ShelfLife struct {
	// BaseURL is the base URL of the shelf-life reference site.
	BaseURL string `koanf:"baseurl"`
}

type Config struct {
	config.Common

	// Scrape is the configuration for recipe page scraping.
	Scrape Scrape `koanf:"scrape"`

	// Models is the configuration for AI models.
	Models Models `koanf:"models"`

	// ShelfLife is the configuration for shelf-life lookups.
	ShelfLife ShelfLife `koanf:"shelflife"`
}