package siteRoutes

import (
	controllers "vibelms/controllers/site"
	validators "vibelms/validators/site"

	"github.com/gofiber/fiber/v2"
)

func SetupSiteRoutes(app *fiber.App, ctl *controllers.SiteController) {
	app.Get("/health", ctl.Health)

	app.Post("/api/contact", validators.Contact(), ctl.SubmitContact)
	app.Post("/api/analytics", ctl.TrackEvent)
}
