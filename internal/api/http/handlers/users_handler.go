package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/plot-service/internal/api/dto"
	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/service"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

// UsersHandler exposes administrative user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /user.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, accessKey, err := h.users.Create(c.UserContext(), claims, req.Email, req.Role, req.Zone)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(userResponse(user, accessKey))
}

// List handles GET /user.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i], ""))
	}
	return c.JSON(fiber.Map{"users": resp})
}

// Get handles GET /user/:email.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user, ""))
}

// Update handles PUT /user/:email.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := h.users.Update(c.UserContext(), c.Params("email"), req.Role, req.Zone, req.Active)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user, ""))
}

// Delete handles DELETE /user/:email.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("email")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}

func userResponse(user *domain.User, accessKey string) dto.UserResponse {
	return dto.UserResponse{
		Email:     user.Email,
		Role:      string(user.Role),
		Zone:      user.Zone,
		Active:    user.Active,
		AccessKey: accessKey,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
