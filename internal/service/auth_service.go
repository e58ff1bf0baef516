package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/config"
	"github.com/spec-kit/plot-service/internal/domain"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

const maxSubjectLength = 50

// AuthService performs secret-gated token issuance. Issuance trusts the
// shared secret as the sole gate; the asserted identity is validated for
// shape (role enum, known zone) but not against a stored record.
type AuthService struct {
	gate       *auth.SecretGate
	strategy   auth.TokenStrategy
	knownZones map[string]struct{}
	ttl        time.Duration
}

// NewAuthService builds the service from injected configuration.
func NewAuthService(cfg config.AuthConfig, strategy auth.TokenStrategy) *AuthService {
	known := make(map[string]struct{}, len(cfg.KnownZones))
	for _, zone := range cfg.KnownZones {
		known[zone] = struct{}{}
	}
	return &AuthService{
		gate:       auth.NewSecretGate(cfg.IssuanceSecret),
		strategy:   strategy,
		knownZones: known,
		ttl:        cfg.TokenTTL(),
	}
}

// IssueToken validates the presented credential and identity claim and
// returns a signed token. Checks run in a fixed order and the first
// failure wins: credential presence, credential format, credential match,
// role, zone, subject shape.
func (s *AuthService) IssueToken(ctx context.Context, authorizationHeader, subject, role, zone string) (string, time.Time, error) {
	secret, err := auth.ExtractIssuanceSecret(authorizationHeader)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredential):
			return "", time.Time{}, apperrors.NewMissingAuthorization()
		default:
			return "", time.Time{}, apperrors.NewInvalidAuthorizationFormat()
		}
	}
	if err := s.gate.Verify(secret); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	requestedRole := domain.Role(role)
	if !requestedRole.Valid() {
		return "", time.Time{}, apperrors.NewInvalidRole(role)
	}
	if !s.zoneKnown(zone) {
		return "", time.Time{}, apperrors.NewInvalidZone(zone)
	}
	if subject == "" || len(subject) > maxSubjectLength {
		return "", time.Time{}, apperrors.NewValidationError(
			"subject must be a non-empty string of at most 50 characters", nil)
	}

	perms := auth.PermissionsForRole(requestedRole)
	token, expiresAt, err := s.strategy.Issue(ctx, subject, requestedRole, zone, perms)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// RevokeToken invalidates a token before its expiry. Only the opaque
// strategy supports this; self-contained JWTs die by expiry alone.
func (s *AuthService) RevokeToken(ctx context.Context, token string) error {
	revoker, ok := s.strategy.(auth.Revoker)
	if !ok {
		return apperrors.NewDomainError(
			"REVOCATION_UNSUPPORTED",
			"token revocation requires the opaque token mode",
			http.StatusBadRequest, nil)
	}
	if err := revoker.Revoke(ctx, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// ExpiresInSeconds reports the validity window length for issuance responses.
func (s *AuthService) ExpiresInSeconds() int {
	return int(s.ttl.Seconds())
}

func (s *AuthService) zoneKnown(zone string) bool {
	if !domain.ValidZoneCode(zone) {
		return false
	}
	_, ok := s.knownZones[zone]
	return ok
}
