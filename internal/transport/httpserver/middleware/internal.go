package middleware

import (
	"crypto/subtle"
	"net/http"

	"listings-api/pkg/logger"
)

const internalSecretHeader = "X-Internal-Secret"

// NewInternalSecret guards the service-to-service surface. Peers present a
// shared secret header, not a user token; a mismatch is a 401.
func NewInternalSecret(secret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(internalSecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				log.Warn("internal: invalid internal API secret", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "invalid_internal_secret", "invalid internal API secret")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
