package middleware

import (
	"vibelms/config"
	"vibelms/models"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly requires a resolved user (Protected must run first) whose email
// is on the configured allow-list.
func AdminOnly(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Unauthorized!")
		}

		if !cfg.IsAdminEmail(user.Email) {
			return ErrorResponse(c, fiber.StatusForbidden, CodeForbidden, "You do not have permission to access this resource!")
		}

		return c.Next()
	}
}

// IsAdmin reports whether the request carries an allow-listed user.
func IsAdmin(c *fiber.Ctx, cfg *config.Config) bool {
	user, ok := c.Locals("user").(*models.User)
	return ok && cfg.IsAdminEmail(user.Email)
}
