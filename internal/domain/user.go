package domain

import "time"

// User is an administrative account managed by super admins.
// The access key hash is stored for a planned per-subject credential
// check; token issuance itself is gated by the shared issuance secret.
type User struct {
	ID            string
	Email         string
	Role          Role
	Zone          string
	AccessKeyHash string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
