package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/plot-service/internal/domain"
)

// OpaqueManager issues random session ids as bearer tokens and keeps the
// claims in a ClaimsStore. Unlike the JWT strategy it supports revocation:
// deleting the stored session invalidates the token immediately.
type OpaqueManager struct {
	store ClaimsStore
	ttl   time.Duration
	now   func() time.Time
}

// NewOpaqueManager builds a manager over the given store. Pass nil for
// wall-clock time.
func NewOpaqueManager(store ClaimsStore, ttl time.Duration, now func() time.Time) *OpaqueManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &OpaqueManager{store: store, ttl: ttl, now: now}
}

// Issue stores the claims under a fresh session id and returns the id as
// the bearer token.
func (m *OpaqueManager) Issue(ctx context.Context, subject string, role domain.Role, zone string, perms domain.PermissionSet) (string, time.Time, error) {
	issuedAt := m.now()
	claims := Claims{
		Subject:     subject,
		Role:        role,
		Zone:        zone,
		Permissions: perms,
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(m.ttl),
	}

	id := uuid.NewString()
	if err := m.store.Put(ctx, id, claims, m.ttl); err != nil {
		return "", time.Time{}, err
	}
	return id, claims.ExpiresAt, nil
}

// Verify loads the session and checks its expiry. A token is valid strictly
// while now is before the expiry instant.
func (m *OpaqueManager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.store.Get(ctx, token)
	if err != nil {
		if err == ErrTokenNotFound {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if !m.now().Before(claims.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Revoke deletes the session backing the token.
func (m *OpaqueManager) Revoke(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}
