// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package addreminder handles POST /planner/reminders: schedule a cooking
// reminder for a planned meal. One reminder exists per meal; scheduling
// again replaces it.
package addreminder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/larderdb"
	"github.com/larderapp/server/internal/web"
)

// Scheduler persists and arms reminders.
type Scheduler interface {
	Schedule(ctx context.Context, r larderdb.Reminder) error
}

func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

type Handler struct {
	scheduler Scheduler
}

type addRequest struct {
	MealID  string    `json:"mealId"`
	FireAt  time.Time `json:"fireAt"`
	Message string    `json:"message"`
}

func (h *Handler) AddReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := auth.UserID(ctx)
	if userID == "" {
		web.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.MealID == "" {
		web.Error(w, "mealId is required", http.StatusBadRequest)
		return
	}
	if req.FireAt.IsZero() {
		web.Error(w, "fireAt is required", http.StatusBadRequest)
		return
	}

	message := req.Message
	if message == "" {
		message = "Time to start cooking"
	}

	reminder := larderdb.Reminder{
		// The meal ID doubles as the reminder ID so a meal has at most one.
		ID:      req.MealID,
		UserID:  userID,
		MealID:  req.MealID,
		Message: message,
		FireAt:  req.FireAt,
	}
	if err := h.scheduler.Schedule(ctx, reminder); err != nil {
		slog.ErrorContext(ctx, "addreminder: scheduling reminder", "meal", req.MealID, "error", err)
		web.Error(w, "could not schedule reminder", http.StatusInternalServerError)
		return
	}

	web.JSON(w, map[string]string{"reminderId": reminder.ID})
}