// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

type userIDKey struct{}

// WithUserID returns a context carrying an explicit user ID, overriding the
// request token. Used by tests and internal callers.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user's ID, or "" for unauthenticated
// requests.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return ""
	}
	return tok.UID
}

// IsPremium checks whether the user has a premium entitlement based on their
// token claims. Premium unlocks descriptor stripping in ingredient parsing.
func IsPremium(ctx context.Context) bool {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return false
	}
	if premium, ok := tok.Claims["premium"].(bool); ok {
		return premium
	}
	return false
}