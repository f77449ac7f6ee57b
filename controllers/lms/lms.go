package lmsController

import (
	"errors"
	"log"

	"vibelms/config"
	"vibelms/middleware"
	"vibelms/models"
	courseModels "vibelms/models/course"
	"vibelms/services"
	"vibelms/utils"
	lmsValidator "vibelms/validators/lms"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LMSController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Progress *services.ProgressService
	Mailer   *utils.Mailer
}

func New(db *gorm.DB, cfg *config.Config, progress *services.ProgressService, mailer *utils.Mailer) *LMSController {
	return &LMSController{DB: db, Cfg: cfg, Progress: progress, Mailer: mailer}
}

func (ctl *LMSController) Enroll(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	reqData := c.Locals("validatedEnroll").(*lmsValidator.EnrollRequest)

	canSeeDrafts := middleware.IsAdmin(c, ctl.Cfg)
	enrollment, created, err := ctl.Progress.Enroll(user.ID, reqData.CourseID, canSeeDrafts)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		}
		log.Printf("Error enrolling user %d in course %d: %v", user.ID, reqData.CourseID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to enroll in course!")
	}

	if created && ctl.Mailer != nil {
		var crs courseModels.Course
		if err := ctl.DB.First(&crs, enrollment.CourseID).Error; err == nil {
			go func(email, name, title string) {
				if err := ctl.Mailer.SendEnrollmentEmail(email, name, title); err != nil {
					log.Printf("Error sending enrollment email: %v", err)
				}
			}(user.Email, user.Name, crs.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func (ctl *LMSController) MyEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	enrollments, err := ctl.Progress.MyEnrollments(userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to fetch enrollments!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

func (ctl *LMSController) ReportProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedProgress").(*lmsValidator.ProgressReport)

	progress, err := ctl.Progress.ReportActivity(userID, reqData.CourseID, services.ActivityInput{
		ModuleUID:        reqData.ModuleID,
		LessonUID:        reqData.LessonID,
		Completed:        reqData.Completed,
		Score:            reqData.Score,
		TimeSpentSeconds: reqData.TimeSpentSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		case errors.Is(err, services.ErrLessonNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Lesson not found in course!")
		}
		log.Printf("Error reporting progress for user %d course %d: %v", userID, reqData.CourseID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to update progress!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}

func (ctl *LMSController) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	progress, err := ctl.Progress.GetProgress(userID, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to fetch progress!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}
