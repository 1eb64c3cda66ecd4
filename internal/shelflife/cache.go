// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package shelflife

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/larderapp/server/internal/ingredient"
	"github.com/larderapp/server/internal/larderdb"
)

// Source is what a CachedScraper resolved a lookup against.
type Source interface {
	Lookup(ctx context.Context, foodName, storageType string) (*Result, error)
}

// CachedScraper serves lookups from the shared master food list and falls
// back to the source site, writing successful scrapes back so each food is
// scraped at most once per storage type.
type CachedScraper struct {
	source Source
	store  *firestore.Client
}

func NewCachedScraper(source Source, store *firestore.Client) *CachedScraper {
	return &CachedScraper{source: source, store: store}
}

func (c *CachedScraper) doc(normalized string) *firestore.DocumentRef {
	return c.store.Collection("masterFoods").Doc(normalized)
}

func (c *CachedScraper) Lookup(ctx context.Context, foodName, storageType string) (*Result, error) {
	normalized := ingredient.NormalizeName(foodName)
	if normalized == "" {
		return nil, ErrNotFound
	}

	snap, err := c.doc(normalized).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, fmt.Errorf("shelflife: reading master food: %w", err)
	}
	var food larderdb.MasterFood
	if snap != nil && snap.Exists() {
		if err := snap.DataTo(&food); err != nil {
			return nil, fmt.Errorf("shelflife: decoding master food: %w", err)
		}
		if days, ok := food.ShelfLifeDays[storageType]; ok {
			return &Result{
				FoodName:    foodName,
				StorageType: storageType,
				Days:        days,
				Source:      "master-food-list",
			}, nil
		}
	}

	res, err := c.source.Lookup(ctx, foodName, storageType)
	if err != nil {
		return nil, err
	}

	if food.ShelfLifeDays == nil {
		food = larderdb.MasterFood{
			ID:             normalized,
			Name:           foodName,
			NormalizedName: normalized,
			ShelfLifeDays:  map[string]int{},
		}
	}
	food.ShelfLifeDays[storageType] = res.Days
	if _, err := c.doc(normalized).Set(ctx, food); err != nil {
		// Cache write failures cost a rescrape, not the response.
		slog.WarnContext(ctx, "shelflife: caching master food", "food", normalized, "error", err)
	}

	return res, nil
}