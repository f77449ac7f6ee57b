package authRoutes

import (
	controllers "vibelms/controllers/auth"
	validators "vibelms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the account endpoints.
func SetupAuthRoutes(app *fiber.App, ctl *controllers.AuthController, protected fiber.Handler) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", validators.Register(), ctl.Register)
	authGroup.Post("/login", validators.Login(), ctl.Login)
	authGroup.Post("/linkedin", validators.LinkedIn(), ctl.LinkedInLogin)
	authGroup.Get("/me", protected, ctl.Me)
}
