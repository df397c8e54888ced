package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func internalError(c *fiber.Ctx) error {
	return errorResponse(c, fiber.StatusInternalServerError, internalErrorMessage)
}

// validationFailed renders validator errors as a per-field message map.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": errorMessages,
	})
}

// parseBody decodes the request body into out and validates it.
// It writes the 400 response itself and reports whether the caller may proceed.
func parseBody(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}
