package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "tradebinder/internal/log"
	"tradebinder/internal/services"
)

// RequireUser enforces a valid bearer token and stashes the caller's id in
// Locals("userID") for the handlers downstream.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		u, err := auth.UserFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Security(c, "access.denied.token", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals("userID", u.ID)
		c.Locals("user", u)
		return c.Next()
	}
}
