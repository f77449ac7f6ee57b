package lmsRoutes

import (
	controllers "vibelms/controllers/lms"
	validators "vibelms/validators/lms"

	"github.com/gofiber/fiber/v2"
)

// SetupLMSRoutes wires enrollment and progress tracking. Every endpoint
// requires a logged-in user.
func SetupLMSRoutes(app *fiber.App, ctl *controllers.LMSController, protected fiber.Handler) {
	lmsGroup := app.Group("/api/lms", protected)

	lmsGroup.Post("/enroll", validators.Enroll(), ctl.Enroll)
	lmsGroup.Get("/my-enrollments", ctl.MyEnrollments)
	lmsGroup.Post("/progress", validators.ReportProgress(), ctl.ReportProgress)
	lmsGroup.Get("/progress/:courseId", validators.CourseIDParam(), ctl.GetProgress)
}
