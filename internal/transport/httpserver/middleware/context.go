package middleware

import (
	"context"

	"listings-api/internal/identity"
)

type contextKey int

const (
	principalKey contextKey = iota
	tokenKey
)

func WithPrincipal(ctx context.Context, principal identity.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func PrincipalFromContext(ctx context.Context) (identity.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(identity.Principal)
	if !ok || principal.ID == "" {
		return identity.Principal{}, false
	}
	return principal, true
}

// WithToken keeps the caller's raw bearer token around so the enrichment
// path can forward it to the identity service.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
