// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoIngredients is returned when every strategy has run without finding
// any ingredients.
var ErrNoIngredients = errors.New("scrape: no extractable ingredients")

// Candidate is an extracted recipe candidate. Fields other than Ingredients
// are best effort and may be empty.
type Candidate struct {
	Title       string
	Ingredients []string
	ImageURL    string
}

// Result is the tagged outcome of one strategy: found a candidate, found
// nothing (try the next strategy), or failed outright.
type Result struct {
	Candidate *Candidate
	Err       error
}

// Found wraps a successful candidate.
func Found(c *Candidate) Result {
	return Result{Candidate: c}
}

// NotFound signals the strategy ran cleanly but matched nothing.
func NotFound() Result {
	return Result{}
}

// Failed signals the strategy itself errored. The dispatcher treats this the
// same as not-found unless it was the last strategy.
func Failed(err error) Result {
	return Result{Err: err}
}

// Strategy is one ordered attempt at extracting a recipe from a page.
type Strategy struct {
	// Name identifies the strategy in logs.
	Name string

	// Extract runs the strategy. It is attempted exactly once; there are no
	// retries anywhere in the cascade.
	Extract func(ctx context.Context, page *Page) Result
}

// Pipeline runs strategies in order until one finds a candidate.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline returns a Pipeline trying the given strategies in order.
func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Extract runs the cascade and returns the first candidate found along with
// the name of the strategy that produced it. A strategy error is non-fatal
// while later strategies remain; only an error from the final strategy is
// surfaced, and exhaustion without error returns ErrNoIngredients.
func (p *Pipeline) Extract(ctx context.Context, page *Page) (*Candidate, string, error) {
	for i, s := range p.strategies {
		res := s.Extract(ctx, page)
		switch {
		case res.Candidate != nil && len(res.Candidate.Ingredients) > 0:
			return res.Candidate, s.Name, nil
		case res.Err != nil && i == len(p.strategies)-1:
			return nil, s.Name, res.Err
		case res.Err != nil:
			slog.WarnContext(ctx, "scrape: strategy failed, trying next",
				"strategy", s.Name, "url", page.URL.String(), "error", res.Err)
		}
	}
	return nil, "", ErrNoIngredients
}