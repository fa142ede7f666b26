package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type correlationIDType int

const (
	requestIDKey correlationIDType = iota
	requestFieldsKey
)

// WithRequestID returns a context which knows its request id.
// A request is a single unit of work such as one outgoing message, and may span goroutines.
func WithRequestID(ctx context.Context, id string, fields ...zap.Field) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, id)
	if len(fields) > 0 {
		ctx = context.WithValue(ctx, requestFieldsKey, fields)
	}
	return ctx
}

// WithNewRequestID is WithRequestID with a random id.
func WithNewRequestID(ctx context.Context, fields ...zap.Field) context.Context {
	return WithRequestID(ctx, uuid.NewString(), fields...)
}

// ExtractRequestID returns the request id stored in ctx.
func ExtractRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// ZContext returns the fields attached to ctx, ready to be passed to a zap logger.
func ZContext(ctx context.Context) zap.Field {
	var fields []zap.Field
	if id, ok := ExtractRequestID(ctx); ok {
		fields = append(fields, zap.String("requestId", id))
	}
	if extra, ok := ctx.Value(requestFieldsKey).([]zap.Field); ok {
		fields = append(fields, extra...)
	}
	return zap.Dict("ctx", fields...)
}
