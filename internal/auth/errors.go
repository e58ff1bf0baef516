package auth

import "errors"

// Issuance-time credential failures. All three surface to callers as an
// authentication failure; the distinct values feed the machine-readable
// error codes without leaking which check tripped beyond that.
var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidCredential   = errors.New("invalid credential")
)

// Verification-time token failures. Surfaced uniformly as unauthorized;
// the distinction exists for internal logging only.
var (
	ErrMissingToken   = errors.New("missing token")
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenInvalid   = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenNotFound  = errors.New("token not found")
)
