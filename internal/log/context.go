package log

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts the logger stored by NewContext, falling back to the
// process default tagged with component.
func FromContext(ctx context.Context, component string) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger.WithComponent(component)
	}
	return &Logger{
		Logger:    slog.Default(),
		component: component,
	}
}
