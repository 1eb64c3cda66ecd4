// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package removereminder handles POST /planner/reminders/remove: cancel a
// scheduled cooking reminder.
package removereminder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/web"
)

// Scheduler cancels armed reminders.
type Scheduler interface {
	Cancel(ctx context.Context, userID, id string) error
}

func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

type Handler struct {
	scheduler Scheduler
}

type removeRequest struct {
	ReminderID string `json:"reminderId"`
}

func (h *Handler) RemoveReminder(w http.ResponseWriter, r *http.Request) {
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
	if req.ReminderID == "" {
		web.Error(w, "reminderId is required", http.StatusBadRequest)
		return
	}

	if err := h.scheduler.Cancel(ctx, userID, req.ReminderID); err != nil {
		slog.ErrorContext(ctx, "removereminder: canceling reminder", "reminder", req.ReminderID, "error", err)
		web.Error(w, "could not cancel reminder", http.StatusInternalServerError)
		return
	}

	web.JSON(w, map[string]string{"status": "canceled"})
}