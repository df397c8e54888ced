package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userId"

// TokenValidator verifies a bearer token and returns the user ID it carries.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// AuthRequired is a Fiber middleware that admits only requests carrying a
// valid bearer token. A missing token is answered with 401, a token that
// fails verification with 403.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		userID, err := validator.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
