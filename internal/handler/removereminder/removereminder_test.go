// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package removereminder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderapp/server/internal/auth"
)

type fakeScheduler struct {
	gotUser string
	gotID   string
}

func (s *fakeScheduler) Cancel(_ context.Context, userID, id string) error {
	s.gotUser = userID
	s.gotID = id
	return nil
}

func doRemove(t *testing.T, h *Handler, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/planner/reminders/remove", strings.NewReader(body))
	if authed {
		req = req.WithContext(auth.WithUserID(req.Context(), "user1"))
	}
	rec := httptest.NewRecorder()
	h.RemoveReminder(rec, req)
	return rec
}

func TestRemoveReminder(t *testing.T) {
	s := &fakeScheduler{}
	h := NewHandler(s)

	rec := doRemove(t, h, `{"reminderId": "2026-09-01-dinner"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user1", s.gotUser)
	assert.Equal(t, "2026-09-01-dinner", s.gotID)
}

func TestRemoveReminder_Unauthenticated(t *testing.T) {
	h := NewHandler(&fakeScheduler{})

	rec := doRemove(t, h, `{"reminderId": "2026-09-01-dinner"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRemoveReminder_BadRequests(t *testing.T) {
	h := NewHandler(&fakeScheduler{})

	for _, body := range []string{`{`, `{}`} {
		rec := doRemove(t, h, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}