package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	"github.com/feastfinder/feastfinder-backend/internal/service"
	"github.com/feastfinder/feastfinder-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	auth, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to register user"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(auth, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	auth, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Login failed"))
	}

	return c.JSON(models.SuccessResponse(auth, "Login successful"))
}
