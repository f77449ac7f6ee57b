package lmsValidator

import (
	"strconv"
	"strings"

	"vibelms/middleware"

	"github.com/gofiber/fiber/v2"
)

type EnrollRequest struct {
	CourseID uint `json:"courseId"`
}

// ProgressReport mirrors one lesson activity report. Pointer fields
// distinguish "not provided" from zero values: completed and score only
// overwrite when present, timeSpentSeconds accumulates.
type ProgressReport struct {
	CourseID         uint     `json:"courseId"`
	ModuleID         string   `json:"moduleId"`
	LessonID         string   `json:"lessonId"`
	Completed        *bool    `json:"completed"`
	Score            *float64 `json:"score"`
	TimeSpentSeconds *int64   `json:"timeSpentSeconds"`
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseId": "Course ID is required!",
			})
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

func ReportProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressReport)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if strings.TrimSpace(reqData.ModuleID) == "" {
			errors["moduleId"] = "Module ID is required!"
		}
		if strings.TrimSpace(reqData.LessonID) == "" {
			errors["lessonId"] = "Lesson ID is required!"
		}
		if reqData.Score != nil && (*reqData.Score < 0 || *reqData.Score > 100) {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("courseId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid Course ID!")
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
