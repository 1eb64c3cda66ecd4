// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package getmealplan handles GET /planner/plan: return the user's planned
// meals for a date range.
package getmealplan

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/larderdb"
	"github.com/larderapp/server/internal/web"
)

// Planner is the persistence layer for meal plan reads.
type Planner interface {
	Meals(ctx context.Context, userID string, start, end time.Time) ([]larderdb.PlannedMeal, error)
}

func NewHandler(planner Planner) *Handler {
	return &Handler{planner: planner}
}

type Handler struct {
	planner Planner
}

type mealResponse struct {
	ID       string         `json:"id"`
	Date     string         `json:"date"`
	MealType string         `json:"mealType"`
	Dishes   []dishResponse `json:"dishes"`
}

type dishResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	SourceURL   string               `json:"sourceUrl,omitempty"`
	ImageURL    string               `json:"imageUrl,omitempty"`
	Completed   bool                 `json:"completed"`
	Ingredients []ingredientResponse `json:"ingredients"`
}

type ingredientResponse struct {
	Text     string  `json:"text"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Status   string  `json:"status"`
}

func (h *Handler) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := auth.UserID(ctx)
	if userID == "" {
		web.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		web.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		web.Error(w, "end must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if end.Before(start) {
		web.Error(w, "end must not be before start", http.StatusBadRequest)
		return
	}

	meals, err := h.planner.Meals(ctx, userID, start, end)
	if err != nil {
		slog.ErrorContext(ctx, "getmealplan: fetching meals", "error", err)
		web.Error(w, "could not load meal plan", http.StatusInternalServerError)
		return
	}

	res := make([]mealResponse, 0, len(meals))
	for _, meal := range meals {
		m := mealResponse{
			ID:       meal.ID,
			Date:     meal.Date.Format("2006-01-02"),
			MealType: string(meal.MealType),
			Dishes:   []dishResponse{},
		}
		for _, dish := range meal.Dishes {
			d := dishResponse{
				ID:        dish.ID,
				Name:      dish.Name,
				SourceURL: dish.SourceURL,
				ImageURL:  dish.ImageURL,
				Completed: dish.Completed,
			}
			for _, ing := range dish.Ingredients {
				d.Ingredients = append(d.Ingredients, ingredientResponse{
					Text:     ing.Text,
					Name:     ing.Name,
					Quantity: ing.Quantity,
					Unit:     ing.Unit,
					Status:   string(ing.Status),
				})
			}
			m.Dishes = append(m.Dishes, d)
		}
		res = append(res, m)
	}

	web.JSON(w, map[string]any{"meals": res})
}