package crawler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContextKey string

const RequestIDKey ContextKey = "request_id"

// ContextLogger creates a logger with context information
func ContextLogger(ctx context.Context, baseLogger *zap.Logger) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return baseLogger.With(zap.String(string(RequestIDKey), id))
	}
	return baseLogger
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID retrieves the request ID from context
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func NewRequestID() string {
	return uuid.NewString()
}

// ensureRequestID tags ctx with a fresh request ID unless it already has one.
func ensureRequestID(ctx context.Context) context.Context {
	if RequestID(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx, NewRequestID())
}
