package contextutil

import "context"

// contextKey is unexported so keys cannot collide with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID injects a request id into the context.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request id from the context, or "".
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
