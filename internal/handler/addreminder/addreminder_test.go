// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package addreminder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/larderdb"
)

type fakeScheduler struct {
	scheduled []larderdb.Reminder
}

func (s *fakeScheduler) Schedule(_ context.Context, r larderdb.Reminder) error {
	s.scheduled = append(s.scheduled, r)
	return nil
}

func doAdd(t *testing.T, h *Handler, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/planner/reminders", strings.NewReader(body))
	if authed {
		req = req.WithContext(auth.WithUserID(req.Context(), "user1"))
	}
	rec := httptest.NewRecorder()
	h.AddReminder(rec, req)
	return rec
}

func TestAddReminder(t *testing.T) {
	s := &fakeScheduler{}
	h := NewHandler(s)

	rec := doAdd(t, h, `{"mealId": "2026-09-01-dinner", "fireAt": "2026-09-01T17:30:00Z"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, s.scheduled, 1)
	r := s.scheduled[0]
	assert.Equal(t, "2026-09-01-dinner", r.ID)
	assert.Equal(t, "2026-09-01-dinner", r.MealID)
	assert.Equal(t, "user1", r.UserID)
	assert.Equal(t, "Time to start cooking", r.Message)
	assert.False(t, r.Delivered)
}

func TestAddReminder_Unauthenticated(t *testing.T) {
	h := NewHandler(&fakeScheduler{})

	rec := doAdd(t, h, `{"mealId": "2026-09-01-dinner", "fireAt": "2026-09-01T17:30:00Z"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddReminder_BadRequests(t *testing.T) {
	h := NewHandler(&fakeScheduler{})

	for _, body := range []string{`{`, `{}`, `{"mealId": "2026-09-01-dinner"}`, `{"fireAt": "2026-09-01T17:30:00Z"}`} {
		rec := doAdd(t, h, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}