package auth

import (
	"crypto/subtle"
	"strings"
)

const issuanceScheme = "Bearer"

// ExtractIssuanceSecret parses the Authorization header presented at token
// issuance. The scheme must be exactly "Bearer", case-sensitively; the
// remainder is the presented shared secret.
func ExtractIssuanceSecret(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != issuanceScheme || parts[1] == "" {
		return "", ErrMalformedCredential
	}
	return parts[1], nil
}

// SecretGate verifies the shared issuance secret. The secret is injected
// at construction and immutable for the process lifetime.
type SecretGate struct {
	secret []byte
}

// NewSecretGate builds a gate around the configured secret.
func NewSecretGate(secret string) *SecretGate {
	return &SecretGate{secret: []byte(secret)}
}

// Verify compares the presented secret in constant time. Timing-attack
// resistance here is a correctness requirement, not an optimization.
func (g *SecretGate) Verify(presented string) error {
	if subtle.ConstantTimeCompare(g.secret, []byte(presented)) != 1 {
		return ErrInvalidCredential
	}
	return nil
}
