package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	usernameKey  contextKey = "username"
	requestIDKey contextKey = "requestID"
)

// UsernameFrom retrieves the authenticated username from the request context.
func UsernameFrom(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUsername returns a new context carrying the username claim.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
