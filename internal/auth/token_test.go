package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/plot-service/internal/domain"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestJWTManagerRoundTrip(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	manager := NewJWTManager("signing-key", 24*time.Hour, fixedClock(issued))

	perms := PermissionsForRole(domain.RoleZoneAdmin)
	token, expiresAt, err := manager.Issue(context.Background(), "admin001", domain.RoleZoneAdmin, "GSEZ", perms)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(24*time.Hour), expiresAt)

	claims, err := manager.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin001", claims.Subject)
	assert.Equal(t, domain.RoleZoneAdmin, claims.Role)
	assert.Equal(t, "GSEZ", claims.Zone)
	assert.Equal(t, perms, claims.Permissions)
}

func TestJWTManagerExpiry(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	manager := NewJWTManager("signing-key", 24*time.Hour, func() time.Time { return clock })

	token, expiresAt, err := manager.Issue(context.Background(), "user001", domain.RoleNormalUser, "GSEZ", PermissionsForRole(domain.RoleNormalUser))
	require.NoError(t, err)

	// one second before expiry the token still verifies
	clock = expiresAt.Add(-time.Second)
	_, err = manager.Verify(context.Background(), token)
	assert.NoError(t, err)

	// at the expiry instant it no longer does
	clock = expiresAt
	_, err = manager.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	clock = expiresAt.Add(time.Hour)
	_, err = manager.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManagerRejectsTampering(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	manager := NewJWTManager("signing-key", 24*time.Hour, fixedClock(now))

	token, _, err := manager.Issue(context.Background(), "user001", domain.RoleNormalUser, "GSEZ", PermissionsForRole(domain.RoleNormalUser))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// swap the payload for another token's payload, keeping the signature
	other, _, err := manager.Issue(context.Background(), "admin001", domain.RoleSuperAdmin, "GSEZ", PermissionsForRole(domain.RoleSuperAdmin))
	require.NoError(t, err)
	otherParts := strings.Split(other, ".")

	forged := parts[0] + "." + otherParts[1] + "." + parts[2]
	_, err = manager.Verify(context.Background(), forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManagerRejectsWrongKey(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewJWTManager("signing-key", 24*time.Hour, fixedClock(now))
	verifier := NewJWTManager("other-key", 24*time.Hour, fixedClock(now))

	token, _, err := issuer.Issue(context.Background(), "user001", domain.RoleNormalUser, "GSEZ", PermissionsForRole(domain.RoleNormalUser))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("signing-key", 24*time.Hour, nil)

	_, err := manager.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
