package common

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey represents a context key type
type ContextKey string

// Context keys
const (
	ContextKeyCorrelationID ContextKey = "correlation_id"
)

// WithCorrelationID stores the request's correlation id in the context. It
// is written once at the pipeline edge; everything downstream reads.
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeyCorrelationID, id)
}

// GetCorrelationID extracts the correlation id from context
func GetCorrelationID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyCorrelationID).(uuid.UUID)
	return id, ok
}
