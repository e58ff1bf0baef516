package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/plot-service/internal/domain"
)

// TokenStrategy abstracts how issued claims are turned into a bearer token
// and recovered from one. The JWT strategy is self-contained and stateless;
// the opaque strategy keeps claims server-side behind a ClaimsStore.
type TokenStrategy interface {
	Issue(ctx context.Context, subject string, role domain.Role, zone string, perms domain.PermissionSet) (string, time.Time, error)
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Revoker is implemented by strategies that can invalidate a token before
// expiry. The JWT strategy cannot; stateless bearer tokens die only by
// expiry or signing-key rotation.
type Revoker interface {
	Revoke(ctx context.Context, token string) error
}

// JWTManager issues and validates HS256-signed tokens.
type JWTManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTManager builds a manager around the signing key. The now function
// supplies the clock for both issuance and expiry checks; pass nil for
// wall-clock time.
func NewJWTManager(signingKey string, ttl time.Duration, now func() time.Time) *JWTManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &JWTManager{key: []byte(signingKey), ttl: ttl, now: now}
}

type jwtClaims struct {
	Role        domain.Role          `json:"role"`
	Zone        string               `json:"zone"`
	Permissions domain.PermissionSet `json:"permissions"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token carrying the subject's claims.
func (m *JWTManager) Issue(_ context.Context, subject string, role domain.Role, zone string, perms domain.PermissionSet) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	claims := &jwtClaims{
		Role:        role,
		Zone:        zone,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates the signature and expiry and returns the embedded claims.
// The signature covers every claim field; any tampering fails validation.
func (m *JWTManager) Verify(_ context.Context, tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformedToken
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return &Claims{
		Subject:     claims.Subject,
		Role:        claims.Role,
		Zone:        claims.Zone,
		Permissions: claims.Permissions,
		IssuedAt:    claims.IssuedAt.Time,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
