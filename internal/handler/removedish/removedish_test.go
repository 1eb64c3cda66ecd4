// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package removedish

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larderapp/server/internal/auth"
	"github.com/larderapp/server/internal/planner"
)

type fakePlanner struct {
	err     error
	gotMeal string
	gotDish string
}

func (p *fakePlanner) RemoveDish(_ context.Context, _, mealID, dishID string) error {
	p.gotMeal = mealID
	p.gotDish = dishID
	return p.err
}

func doRemove(t *testing.T, h *Handler, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/planner/dishes/remove", strings.NewReader(body))
	if authed {
		req = req.WithContext(auth.WithUserID(req.Context(), "user1"))
	}
	rec := httptest.NewRecorder()
	h.RemoveDish(rec, req)
	return rec
}

func TestRemoveDish(t *testing.T) {
	p := &fakePlanner{}
	h := NewHandler(p)

	rec := doRemove(t, h, `{"mealId": "2026-09-01-dinner", "dishId": "dish1"}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-09-01-dinner", p.gotMeal)
	assert.Equal(t, "dish1", p.gotDish)
}

func TestRemoveDish_NotFound(t *testing.T) {
	h := NewHandler(&fakePlanner{err: planner.ErrDishNotFound})

	rec := doRemove(t, h, `{"mealId": "2026-09-01-dinner", "dishId": "ghost"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveDish_Failure(t *testing.T) {
	h := NewHandler(&fakePlanner{err: errors.New("transaction aborted")})

	rec := doRemove(t, h, `{"mealId": "2026-09-01-dinner", "dishId": "dish1"}`, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRemoveDish_Unauthenticated(t *testing.T) {
	h := NewHandler(&fakePlanner{})

	rec := doRemove(t, h, `{"mealId": "2026-09-01-dinner", "dishId": "dish1"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRemoveDish_BadRequests(t *testing.T) {
	h := NewHandler(&fakePlanner{})

	for _, body := range []string{`{`, `{}`, `{"mealId": "2026-09-01-dinner"}`, `{"dishId": "dish1"}`} {
		rec := doRemove(t, h, body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}