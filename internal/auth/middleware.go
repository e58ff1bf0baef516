package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/plot-service/internal/domain"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens on protected routes and attaches the
// verified claims to the request.
type Middleware struct {
	strategy TokenStrategy
	logger   *zap.Logger
}

// NewMiddleware constructs middleware around a token strategy.
func NewMiddleware(strategy TokenStrategy, logger *zap.Logger) *Middleware {
	return &Middleware{strategy: strategy, logger: logger}
}

// Handle enforces authentication. Every token failure surfaces uniformly
// as unauthorized; the specific cause is logged internally only.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing bearer token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.strategy.Verify(c.UserContext(), parts[1])
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified claims for the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

// RequirePermission guards a route with the base permission check for a
// resource category. Zone scoping is enforced downstream where the target
// zone is known, so a role with no permission at all is denied here before
// any zone matching happens.
func RequirePermission(category domain.ResourceCategory, required domain.AccessLevel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if decision := Authorize(claims, category, required, ""); !decision.Allowed {
			return apperrors.NewForbidden("insufficient permissions for " + string(required) + " access to " + string(category))
		}
		return c.Next()
	}
}
