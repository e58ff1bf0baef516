package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/plot-service/internal/api/dto"
	"github.com/spec-kit/plot-service/internal/service"
)

// AuthHandler exposes the token issuance endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// IssueToken handles POST /auth/token. The shared secret travels in the
// Authorization header; the asserted identity in the body.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	token, _, err := h.auth.IssueToken(c.UserContext(), c.Get("Authorization"), req.Subject, req.Role, req.Zone)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		Token:            token,
		TokenType:        "bearer",
		ExpiresInSeconds: h.auth.ExpiresInSeconds(),
	})
}

// RevokeToken handles POST /auth/revoke for the opaque token mode. The
// token being revoked is the caller's own bearer token.
func (h *AuthHandler) RevokeToken(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) {
		return fiber.NewError(http.StatusBadRequest, "bearer token required")
	}
	if err := h.auth.RevokeToken(c.UserContext(), header[len(prefix):]); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "token revoked"})
}
