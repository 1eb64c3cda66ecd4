// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package removedish handles POST /planner/dishes/remove: delete a dish
// from its meal slot and release every pantry and shopping-list item it had
// reserved.
package removedish

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/planner"
	"github.com/larderapp/server/internal/web"
)

// Planner is the persistence layer for dish removal.
type Planner interface {
	RemoveDish(ctx context.Context, userID, mealID, dishID string) error
}

func NewHandler(planner Planner) *Handler {
	return &Handler{planner: planner}
}

type Handler struct {
	planner Planner
}

type removeRequest struct {
	MealID string `json:"mealId"`
	DishID string `json:"dishId"`
}

func (h *Handler) RemoveDish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := auth.UserID(ctx)
	if userID == "" {
		web.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.MealID == "" || req.DishID == "" {
		web.Error(w, "mealId and dishId are required", http.StatusBadRequest)
		return
	}

	if err := h.planner.RemoveDish(ctx, userID, req.MealID, req.DishID); err != nil {
		if errors.Is(err, planner.ErrDishNotFound) {
			web.Error(w, "dish not found", http.StatusNotFound)
			return
		}
		slog.ErrorContext(ctx, "removedish: removing dish", "meal", req.MealID, "dish", req.DishID, "error", err)
		web.Error(w, "could not remove dish", http.StatusInternalServerError)
		return
	}

	web.JSON(w, map[string]string{"status": "removed"})
}