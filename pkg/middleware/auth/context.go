package auth

import (
	"context"

	"github.com/joeydtaylor/turnstile/pkg/token"
)

type contextKey struct{ name string }

var identityCtxKey = &contextKey{"identity"}

// WithIdentity attaches the authenticated identity to ctx.
func WithIdentity(ctx context.Context, id token.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFromContext returns the identity attached by the middleware.
func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(token.Identity)
	return id, ok
}

// IsAuthenticated reports whether the request carried a valid token.
func IsAuthenticated(ctx context.Context) bool {
	id, ok := IdentityFromContext(ctx)
	return ok && id.Sub != ""
}
