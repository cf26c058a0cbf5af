package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feastfinder/feastfinder-backend/internal/models"
	"github.com/feastfinder/feastfinder-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch users"))
	}

	return c.JSON(models.SuccessResponse(users, "Users retrieved successfully"))
}
