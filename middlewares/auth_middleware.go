package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/responses"
	"github.com/chandrashekar-chandu/nature-market/services"
)

const subjectKey = "subject"

// Protected resolves the bearer token into the authenticated subject and
// stores it in Locals. Requests without a valid token are rejected with 401
// before any handler runs.
func Protected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "No auth token, access denied",
			})
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid authorization header format",
			})
		}

		subject, err := auth.ParseToken(bearerToken[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Token verification failed, access denied",
			})
		}

		c.Locals(subjectKey, subject)
		return c.Next()
	}
}

// AdminOnly rejects non-admin subjects. Must run after Protected.
func AdminOnly(c *fiber.Ctx) error {
	subject, ok := GetSubject(c)
	if !ok || subject.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(responses.UserResponse{
			Status:  fiber.StatusForbidden,
			Message: "Access denied",
		})
	}
	return c.Next()
}

// GetSubject returns the subject stored by Protected.
func GetSubject(c *fiber.Ctx) (services.Subject, bool) {
	subject, ok := c.Locals(subjectKey).(services.Subject)
	return subject, ok
}
