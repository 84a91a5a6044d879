package identity

import "errors"

var (
	// ErrUnauthenticated means the identity service examined the token and
	// rejected it (or the claims were unusable). Maps to 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrServiceUnavailable means the identity service could not be reached
	// or answered with a non-success status. Distinct from a token
	// rejection. Maps to 503.
	ErrServiceUnavailable = errors.New("identity service unavailable")
)
