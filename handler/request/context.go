package request

import (
	"context"
)

type key int

const (
	userKey key = iota
)

// WithUser context with the calling user id
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFrom get the calling user id from context
func UserFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey).(string)
	return userID, ok && userID != ""
}
