package middleware

import (
	"context"
	"errors"
)

var ErrNoSession = errors.New("session id not found in context")

func GetSessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(sessionContextKey).(string)
	if !ok || sessionID == "" {
		return "", ErrNoSession
	}
	return sessionID, nil
}

// WithSessionID puts id into ctx the same way Session does. Used by tests
// and by non-HTTP callers that act on behalf of a session.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey, sessionID)
}
