package courseController

import (
	"log"
	"time"

	"vibelms/middleware"
	"vibelms/models"
	courseValidator "vibelms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// LegacyRegister records a course registration for clients that predate the
// enrollment tables. CourseKey is a client-side identifier, not validated
// against the catalog.
func (ctl *CourseController) LegacyRegister(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedLegacyRegister").(*courseValidator.LegacyRegisterRequest)

	var existing models.CourseRegistration
	if err := ctl.DB.Where("user_id = ? AND course_key = ?", userID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeConflict, "Already registered for this course!")
	}

	registration := models.CourseRegistration{
		UserID:       userID,
		CourseKey:    reqData.CourseID,
		CourseTitle:  reqData.CourseTitle,
		Status:       "active",
		RegisteredAt: time.Now(),
	}

	if err := ctl.DB.Create(&registration).Error; err != nil {
		log.Printf("Error saving course registration: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error registering for course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course registration successful!", registration)
}

func (ctl *CourseController) LegacyMyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var registrations []models.CourseRegistration
	if err := ctl.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&registrations).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error fetching courses!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": registrations,
	})
}
