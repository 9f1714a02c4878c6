package handlers

import (
	"context"
)

type contextKey string

const userIDKey contextKey = "user_id"

// ContextWithUserID is called by the auth middleware once a token has been
// verified; handlers trust the value as an already authenticated user id.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}
