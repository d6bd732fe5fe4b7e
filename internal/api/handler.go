package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/elysian-softech/account-service/internal/password"
	"github.com/elysian-softech/account-service/internal/service"
)

type AccountHandler struct {
	accounts service.AccountService
	validate *validator.Validate
}

func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		validate: validator.New(),
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type GreetingResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	WelcomeMessage string `json:"welcome_message"`
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var request RegisterRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON", "details": err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	greeting, err := h.accounts.Register(c.Context(), request.Email, request.Password, request.Name)

	if err != nil {
		if errors.Is(err, password.ErrPolicy) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(GreetingResponse{
		Success:        true,
		Message:        "Registration successful.",
		Name:           greeting.Name,
		Email:          greeting.Email,
		WelcomeMessage: greeting.WelcomeMessage,
	})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	greeting, err := h.accounts.Login(c.Context(), request.Email, request.Password)

	if err != nil {
		// One response for unknown account and wrong password.
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(GreetingResponse{
		Success:        true,
		Message:        "Login successful.",
		Name:           greeting.Name,
		Email:          greeting.Email,
		WelcomeMessage: greeting.WelcomeMessage,
	})
}

func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	var request ChangePasswordRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	err := h.accounts.ChangePassword(c.Context(), request.Email, request.CurrentPassword, request.NewPassword)

	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		if errors.Is(err, password.ErrPolicy) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Password changed successfully."})
}
