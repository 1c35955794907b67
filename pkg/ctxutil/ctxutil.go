// Package ctxutil carries per-run correlation values through a context.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey          ctxKey = "run_id"
	presentationIDKey ctxKey = "presentation_id"
)

// WithRunID stores the render run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the render run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithPresentationID stores the presentation being rendered in the context.
func WithPresentationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, presentationIDKey, id)
}

// PresentationIDFromCtx extracts the presentation ID from the context.
// Returns an empty string if absent.
func PresentationIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(presentationIDKey).(string)
	return id
}

// LogAttrs returns the correlation values present in ctx as slog attributes.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if id, ok := RunIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("run_id", id.String()))
	}
	if id := PresentationIDFromCtx(ctx); id != "" {
		attrs = append(attrs, slog.String("presentation_id", id))
	}
	return attrs
}
