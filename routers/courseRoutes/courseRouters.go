package courseRoutes

import (
	controllers "vibelms/controllers/course"
	validators "vibelms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the catalog, admin CRUD and legacy registration
// endpoints. The literal paths must be registered before /:slug so fiber
// never treats "my-courses" or "register" as a slug.
func SetupCourseRoutes(app *fiber.App, ctl *controllers.CourseController, protected, optionalAuth, adminOnly fiber.Handler) {
	courseGroup := app.Group("/api/courses")

	courseGroup.Get("/", ctl.List)
	courseGroup.Post("/register", protected, validators.LegacyRegister(), ctl.LegacyRegister)
	courseGroup.Get("/my-courses", protected, ctl.LegacyMyCourses)
	courseGroup.Get("/:slug", optionalAuth, validators.Slug(), ctl.GetBySlug)

	courseGroup.Post("/", protected, adminOnly, validators.SaveCourse(), ctl.Create)
	courseGroup.Put("/:id", protected, adminOnly, validators.CourseID(), validators.SaveCourse(), ctl.Update)
	courseGroup.Delete("/:id", protected, adminOnly, validators.CourseID(), ctl.Delete)
}
