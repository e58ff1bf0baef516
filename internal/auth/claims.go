package auth

import (
	"time"

	"github.com/spec-kit/plot-service/internal/domain"
)

// Claims is the set of attributes carried by an issued token. Once a
// token is issued its claims are immutable; no server-side session state
// backs them in JWT mode.
type Claims struct {
	Subject     string               `json:"sub"`
	Role        domain.Role          `json:"role"`
	Zone        string               `json:"zone"`
	Permissions domain.PermissionSet `json:"permissions"`
	IssuedAt    time.Time            `json:"issued_at"`
	ExpiresAt   time.Time            `json:"expires_at"`
}
