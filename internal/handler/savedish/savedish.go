// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package savedish handles POST /planner/dishes: place a dish into a
// (date, meal type) slot, matching its ingredients against the pantry and
// shopping list and reserving every matched item for the dish.
package savedish

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/larderdb"
	"github.com/larderapp/server/internal/planner"
	"github.com/larderapp/server/internal/web"
)

// Planner is the persistence layer for dish saves.
type Planner interface {
	Candidates(ctx context.Context, userID string) (planner.Candidates, error)
	SaveDish(ctx context.Context, userID string, date time.Time, mealType larderdb.MealType, name, sourceURL, imageURL string, matches []planner.Match) (*larderdb.Dish, error)
	SetDishImage(ctx context.Context, userID, mealID, dishID, imageURL string) error
	AddMissingToShoppingList(ctx context.Context, userID, listID string, matches []planner.Match) error
}

// ImageMirror copies an external image into the public bucket.
type ImageMirror interface {
	MirrorImage(ctx context.Context, dishID string, srcURL string) (string, error)
}

func NewHandler(planner Planner, mirror ImageMirror) *Handler {
	return &Handler{
		planner: planner,
		mirror:  mirror,
	}
}

type Handler struct {
	planner Planner
	mirror  ImageMirror
}

type saveRequest struct {
	Date        string   `json:"date"`
	MealType    string   `json:"mealType"`
	Name        string   `json:"name"`
	SourceURL   string   `json:"sourceUrl"`
	ImageURL    string   `json:"imageUrl"`
	Ingredients []string `json:"ingredients"`

	// AddMissingToList writes the dish's missing ingredients to the
	// shopping list identified by ListID.
	AddMissingToList bool   `json:"addMissingToList"`
	ListID           string `json:"listId"`
}

type ingredientResult struct {
	Text     string  `json:"text"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Status   string  `json:"status"`
}

type saveResponse struct {
	MealID      string             `json:"mealId"`
	DishID      string             `json:"dishId"`
	Name        string             `json:"name"`
	ImageURL    string             `json:"imageUrl,omitempty"`
	Ingredients []ingredientResult `json:"ingredients"`
}

var mealTypes = map[string]larderdb.MealType{
	string(larderdb.MealTypeBreakfast): larderdb.MealTypeBreakfast,
	string(larderdb.MealTypeLunch):     larderdb.MealTypeLunch,
	string(larderdb.MealTypeDinner):    larderdb.MealTypeDinner,
}

func (h *Handler) SaveDish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := auth.UserID(ctx)
	if userID == "" {
		web.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		web.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	mealType, ok := mealTypes[req.MealType]
	if !ok {
		web.Error(w, "mealType must be one of breakfast, lunch, dinner", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		web.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if len(req.Ingredients) == 0 {
		web.Error(w, "ingredients must be a non-empty array", http.StatusBadRequest)
		return
	}

	candidates, err := h.planner.Candidates(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "savedish: fetching match candidates", "error", err)
		web.Error(w, "could not load pantry", http.StatusInternalServerError)
		return
	}
	matches := planner.MatchIngredients(req.Ingredients, candidates.Pantry, candidates.ListItems)

	dish, err := h.planner.SaveDish(ctx, userID, date, mealType, req.Name, req.SourceURL, req.ImageURL, matches)
	if err != nil {
		if errors.Is(err, planner.ErrItemClaimed) {
			web.Error(w, "an ingredient was reserved by another dish, try again", http.StatusConflict)
			return
		}
		slog.ErrorContext(ctx, "savedish: saving dish", "error", err)
		web.Error(w, "could not save dish", http.StatusInternalServerError)
		return
	}
	mealID := larderdb.MealID(date, mealType)

	imageURL := dish.ImageURL
	if req.ImageURL != "" && h.mirror != nil {
		// Mirroring is best effort. The source URL stays if it fails.
		mirrored, err := h.mirror.MirrorImage(ctx, dish.ID, req.ImageURL)
		if err != nil {
			slog.WarnContext(ctx, "savedish: mirroring dish image", "dish", dish.ID, "error", err)
		} else if err := h.planner.SetDishImage(ctx, userID, mealID, dish.ID, mirrored); err != nil {
			slog.WarnContext(ctx, "savedish: updating dish image", "dish", dish.ID, "error", err)
		} else {
			imageURL = mirrored
		}
	}

	if req.AddMissingToList {
		listID := req.ListID
		if listID == "" {
			listID = "default"
		}
		if err := h.planner.AddMissingToShoppingList(ctx, userID, listID, matches); err != nil {
			slog.ErrorContext(ctx, "savedish: adding missing ingredients to list", "error", err)
			web.Error(w, "could not update shopping list", http.StatusInternalServerError)
			return
		}
	}

	res := saveResponse{
		MealID:   mealID,
		DishID:   dish.ID,
		Name:     dish.Name,
		ImageURL: imageURL,
	}
	for _, ing := range dish.Ingredients {
		res.Ingredients = append(res.Ingredients, ingredientResult{
			Text:     ing.Text,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Status:   string(ing.Status),
		})
	}
	web.JSON(w, res)
}