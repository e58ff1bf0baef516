package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/config"
	"github.com/spec-kit/plot-service/internal/domain"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		IssuanceSecret: "topsecret",
		SigningKey:     "signing-key",
		TokenTTLHours:  24,
		KnownZones:     []string{"GSEZ", "OSEZ"},
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestAuthService(strategy auth.TokenStrategy) *AuthService {
	if strategy == nil {
		strategy = auth.NewJWTManager("signing-key", 24*time.Hour, fixedNow)
	}
	return NewAuthService(testAuthConfig(), strategy)
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.Code
}

func TestIssueTokenHappyPath(t *testing.T) {
	strategy := auth.NewJWTManager("signing-key", 24*time.Hour, fixedNow)
	svc := newTestAuthService(strategy)

	token, expiresAt, err := svc.IssueToken(context.Background(), "Bearer topsecret", "admin001", "super_admin", "GSEZ")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedNow().Add(24*time.Hour), expiresAt)
	assert.Equal(t, 86400, svc.ExpiresInSeconds())

	claims, err := strategy.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin001", claims.Subject)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
	assert.Equal(t, "GSEZ", claims.Zone)
	assert.Equal(t, domain.AccessWrite, claims.Permissions[domain.CategoryPlots])
	assert.Equal(t, domain.AccessWrite, claims.Permissions[domain.CategoryUsers])
}

func TestIssueTokenCredentialFailures(t *testing.T) {
	svc := newTestAuthService(nil)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{name: "missing header", header: "", wantCode: "MISSING_AUTHORIZATION"},
		{name: "no scheme", header: "topsecret", wantCode: "INVALID_AUTHORIZATION_FORMAT"},
		{name: "lowercase scheme", header: "bearer topsecret", wantCode: "INVALID_AUTHORIZATION_FORMAT"},
		{name: "wrong secret", header: "Bearer nottherightone", wantCode: "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.IssueToken(context.Background(), tt.header, "admin001", "super_admin", "GSEZ")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errorCode(t, err))
		})
	}
}

func TestIssueTokenIdentityFailures(t *testing.T) {
	svc := newTestAuthService(nil)

	tests := []struct {
		name     string
		subject  string
		role     string
		zone     string
		wantCode string
	}{
		{name: "unknown role", subject: "admin001", role: "administrator", zone: "GSEZ", wantCode: "INVALID_ROLE"},
		{name: "empty role", subject: "admin001", role: "", zone: "GSEZ", wantCode: "INVALID_ROLE"},
		{name: "uppercased role", subject: "admin001", role: "SUPER_ADMIN", zone: "GSEZ", wantCode: "INVALID_ROLE"},
		{name: "unknown zone", subject: "admin001", role: "super_admin", zone: "NOPEZ", wantCode: "INVALID_ZONE"},
		{name: "lowercase zone", subject: "admin001", role: "super_admin", zone: "gsez", wantCode: "INVALID_ZONE"},
		{name: "zone too short", subject: "admin001", role: "super_admin", zone: "GS", wantCode: "INVALID_ZONE"},
		{name: "empty subject", subject: "", role: "super_admin", zone: "GSEZ", wantCode: "VALIDATION_FAILED"},
		{name: "oversized subject", subject: string(make([]byte, 51)), role: "super_admin", zone: "GSEZ", wantCode: "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.IssueToken(context.Background(), "Bearer topsecret", tt.subject, tt.role, tt.zone)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errorCode(t, err))
		})
	}
}

func TestIssueTokenCredentialCheckedFirst(t *testing.T) {
	svc := newTestAuthService(nil)

	// with a bad credential and a bad role, the credential failure wins
	_, _, err := svc.IssueToken(context.Background(), "Bearer wrong", "admin001", "administrator", "NOPEZ")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))

	// with a valid credential, the role failure comes before the zone failure
	_, _, err = svc.IssueToken(context.Background(), "Bearer topsecret", "admin001", "administrator", "NOPEZ")
	require.Error(t, err)
	assert.Equal(t, "INVALID_ROLE", errorCode(t, err))
}

func TestRevokeToken(t *testing.T) {
	t.Run("jwt strategy cannot revoke", func(t *testing.T) {
		svc := newTestAuthService(nil)
		err := svc.RevokeToken(context.Background(), "some-token")
		require.Error(t, err)
		assert.Equal(t, "REVOCATION_UNSUPPORTED", errorCode(t, err))
	})

	t.Run("opaque strategy revokes", func(t *testing.T) {
		strategy := auth.NewOpaqueManager(auth.NewMemoryClaimsStore(nil), 24*time.Hour, nil)
		svc := newTestAuthService(strategy)

		token, _, err := svc.IssueToken(context.Background(), "Bearer topsecret", "admin001", "super_admin", "GSEZ")
		require.NoError(t, err)

		require.NoError(t, svc.RevokeToken(context.Background(), token))

		_, err = strategy.Verify(context.Background(), token)
		assert.Error(t, err)
	})
}
