package handlers

import (
	"errors"
	"log"

	"contactbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes on router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
}

// CredentialsRequest is the body of both register and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req CredentialsRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if _, err := h.authService.RegisterUser(req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return errorResponse(c, fiber.StatusBadRequest, "Username already exists")
		}
		log.Printf("Error registering user: %v", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Registration successful",
	})
}

// HandleLogin checks credentials and issues a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req CredentialsRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("Error logging in: %v", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}
