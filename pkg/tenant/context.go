package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithScope adds a tenant scope to the context.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, scope)
}

// FromContext retrieves the tenant scope from the context.
// Returns a zero scope and false if none is present.
func FromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(contextKey{}).(Scope)
	return scope, ok
}

// IDFromContext retrieves just the tenant ID from the context.
// Returns empty string and false if no scope is present.
func IDFromContext(ctx context.Context) (string, bool) {
	scope, ok := FromContext(ctx)
	if !ok || scope.TenantID == "" {
		return "", false
	}
	return scope.TenantID, true
}

// MustFromContext retrieves the tenant scope from the context.
// Panics if no scope is present. Use this only in handlers that
// absolutely require a tenant to function.
func MustFromContext(ctx context.Context) Scope {
	scope, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no scope in context")
	}
	return scope
}

// LoggerExtractor returns a ContextExtractor for the logger that extracts
// the tenant ID from context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
