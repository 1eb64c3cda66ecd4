// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package shelflifelookup handles GET /api/shelf-life: look up how long a
// food keeps in a given storage type by scraping the reference site.
package shelflifelookup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/larderapp/server/internal/shelflife"
	"github.com/larderapp/server/internal/web"
)

// Lookup resolves a food name and storage type to a shelf life in days.
type Lookup interface {
	Lookup(ctx context.Context, foodName, storageType string) (*shelflife.Result, error)
}

func NewHandler(lookup Lookup) *Handler {
	return &Handler{lookup: lookup}
}

type Handler struct {
	lookup Lookup
}

func (h *Handler) ShelfLife(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	foodName := r.URL.Query().Get("foodName")
	if foodName == "" {
		web.Error(w, "foodName is required", http.StatusBadRequest)
		return
	}
	storageType := r.URL.Query().Get("storageType")
	if storageType == "" {
		storageType = shelflife.DefaultStorageType
	}
	if !slices.Contains(shelflife.StorageTypes, storageType) {
		web.Error(w, "storageType must be one of refrigerator, freezer, pantry", http.StatusBadRequest)
		return
	}

	res, err := h.lookup.Lookup(ctx, foodName, storageType)
	if err != nil {
		if errors.Is(err, shelflife.ErrNotFound) {
			web.Error(w, "no shelf-life data found for "+foodName, http.StatusNotFound)
			return
		}
		slog.ErrorContext(ctx, "shelflifelookup: looking up shelf life", "food", foodName, "error", err)
		web.Error(w, "shelf-life lookup failed", http.StatusInternalServerError)
		return
	}

	// Shelf-life data changes rarely; let clients cache it for a day.
	w.Header().Set("Cache-Control", "public, max-age=86400")
	web.JSON(w, res)
}