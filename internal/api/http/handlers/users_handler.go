package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zentharo/request-service/internal/api/dto"
	"github.com/zentharo/request-service/internal/auth"
	"github.com/zentharo/request-service/internal/service"
	"github.com/zentharo/request-service/pkg/apperrors"
)

// UsersHandler exposes auth and account endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, token, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{Token: token, Name: user.Name})
}

// Login handles POST /api/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Token: token, Name: user.Name})
}

// UpdateName handles PUT /api/user/name.
func (h *UsersHandler) UpdateName(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.auth.UpdateName(c.Context(), user.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"name": updated.Name})
}

// ChangePassword handles PUT /api/user/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
