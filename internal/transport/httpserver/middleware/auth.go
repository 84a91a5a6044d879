package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"listings-api/internal/identity"
	"listings-api/pkg/logger"
)

// TokenVerifier exchanges a bearer token for a validated principal. Backed
// by the remote identity service in production.
type TokenVerifier interface {
	Introspect(ctx context.Context, token string) (identity.Principal, error)
}

type Auth struct {
	verifier TokenVerifier
	log      logger.Logger
}

func NewAuth(verifier TokenVerifier, log logger.Logger) *Auth {
	return &Auth{verifier: verifier, log: log}
}

// Middleware verifies the request's token remotely and stores the resulting
// principal (and the raw token, for enrichment forwarding) in the context.
// An unreachable identity service is a 503, never a silent acceptance or
// rejection.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := requestToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "missing credentials")
			return
		}

		principal, err := a.verifier.Introspect(r.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrServiceUnavailable) {
				a.log.InternalError("auth: identity service unavailable", err)
				writeError(w, http.StatusServiceUnavailable, "auth_unavailable", "authentication service unavailable")
				return
			}
			a.log.BusinessError("auth: token rejected", err)
			writeError(w, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		ctx := WithPrincipal(r.Context(), principal)
		ctx = WithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOwner gates routes that only make sense for property owners. Admins
// do not bypass it.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		if !principal.IsPropertyOwner() {
			writeError(w, http.StatusForbidden, "owner_role_required", "property owner role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestToken accepts the token either as a bearer Authorization header or
// as the access_token cookie set by the identity service's login flow.
func requestToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1], true
	}

	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
