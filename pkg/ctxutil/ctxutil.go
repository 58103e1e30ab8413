package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	traceIDKey ctxKey = "trace_id"
	sourceKey  ctxKey = "source"
	messageKey ctxKey = "message_id"
)

// WithTraceID stores the per-message trace ID in the context.
func WithTraceID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// NewTraceID stores a fresh random trace ID and returns it with the context.
func NewTraceID(ctx context.Context) (context.Context, uuid.UUID) {
	id := uuid.New()
	return WithTraceID(ctx, id), id
}

// TraceIDFromCtx extracts the trace ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func TraceIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(traceIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithMessage stores the inbound message identity in the context.
func WithMessage(ctx context.Context, source, messageID string) context.Context {
	ctx = context.WithValue(ctx, sourceKey, source)
	return context.WithValue(ctx, messageKey, messageID)
}

// MessageFromCtx extracts the message identity from the context.
// Returns empty strings if absent.
func MessageFromCtx(ctx context.Context) (source, messageID string) {
	source, _ = ctx.Value(sourceKey).(string)
	messageID, _ = ctx.Value(messageKey).(string)
	return source, messageID
}
