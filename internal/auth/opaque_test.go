package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/plot-service/internal/domain"
)

func TestOpaqueManagerRoundTrip(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := fixedClock(issued)
	manager := NewOpaqueManager(NewMemoryClaimsStore(clock), 24*time.Hour, clock)

	perms := PermissionsForRole(domain.RoleSuperAdmin)
	token, expiresAt, err := manager.Issue(context.Background(), "admin001", domain.RoleSuperAdmin, "GSEZ", perms)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, issued.Add(24*time.Hour), expiresAt)

	claims, err := manager.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin001", claims.Subject)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
	assert.Equal(t, perms, claims.Permissions)
}

func TestOpaqueManagerUnknownToken(t *testing.T) {
	manager := NewOpaqueManager(NewMemoryClaimsStore(nil), 24*time.Hour, nil)

	_, err := manager.Verify(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestOpaqueManagerExpiry(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	now := func() time.Time { return clock }
	// a generous store deadline isolates the manager's own expiry check
	manager := NewOpaqueManager(NewMemoryClaimsStore(fixedClock(issued)), 24*time.Hour, now)

	token, expiresAt, err := manager.Issue(context.Background(), "user001", domain.RoleNormalUser, "GSEZ", PermissionsForRole(domain.RoleNormalUser))
	require.NoError(t, err)

	clock = expiresAt.Add(-time.Second)
	_, err = manager.Verify(context.Background(), token)
	assert.NoError(t, err)

	clock = expiresAt
	_, err = manager.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestOpaqueManagerRevoke(t *testing.T) {
	manager := NewOpaqueManager(NewMemoryClaimsStore(nil), 24*time.Hour, nil)

	token, _, err := manager.Issue(context.Background(), "admin001", domain.RoleSuperAdmin, "GSEZ", PermissionsForRole(domain.RoleSuperAdmin))
	require.NoError(t, err)

	_, err = manager.Verify(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(context.Background(), token))

	_, err = manager.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestOpaqueManagerTokensAreUnique(t *testing.T) {
	manager := NewOpaqueManager(NewMemoryClaimsStore(nil), 24*time.Hour, nil)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		token, _, err := manager.Issue(context.Background(), "user001", domain.RoleNormalUser, "GSEZ", PermissionsForRole(domain.RoleNormalUser))
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestMemoryClaimsStoreTTL(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	store := NewMemoryClaimsStore(func() time.Time { return clock })

	claims := Claims{Subject: "user001", Role: domain.RoleNormalUser, Zone: "GSEZ"}
	require.NoError(t, store.Put(context.Background(), "sid", claims, time.Hour))

	got, err := store.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, "user001", got.Subject)

	clock = start.Add(time.Hour)
	_, err = store.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
