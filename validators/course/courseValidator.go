package courseValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"vibelms/middleware"
	course "vibelms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CoursePayload is the nested authoring payload for course create/update.
type CoursePayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Level       string          `json:"level"`
	Price       int64           `json:"price"`
	Tags        []string        `json:"tags"`
	IsPublished *bool           `json:"is_published"`
	Modules     []ModulePayload `json:"modules"`
}

type ModulePayload struct {
	UID     string          `json:"uid"`
	Title   string          `json:"title"`
	Order   int             `json:"order"`
	Lessons []LessonPayload `json:"lessons"`
}

type LessonPayload struct {
	UID             string         `json:"uid"`
	Title           string         `json:"title"`
	Order           int            `json:"order"`
	DurationSeconds int            `json:"duration"`
	VideoURL        string         `json:"video_url"`
	ContentBlocks   []BlockPayload `json:"content_blocks"`
}

type BlockPayload struct {
	UID     string          `json:"uid"`
	Kind    string          `json:"type"`
	Order   int             `json:"order"`
	Payload json.RawMessage `json:"payload"`
}

func validLevel(level string) bool {
	switch level {
	case course.LevelBeginner, course.LevelIntermediate, course.LevelAdvanced:
		return true
	}
	return false
}

func validateCoursePayload(reqData *CoursePayload) map[string]string {
	errors := make(map[string]string)

	if len(strings.TrimSpace(reqData.Title)) < 3 {
		errors["title"] = "Title must be at least 3 characters long!"
	}
	if reqData.Level != "" && !validLevel(reqData.Level) {
		errors["level"] = "Level must be beginner, intermediate or advanced!"
	}
	if reqData.Price < 0 {
		errors["price"] = "Price cannot be negative!"
	}

	for i, m := range reqData.Modules {
		if strings.TrimSpace(m.Title) == "" {
			errors["modules["+strconv.Itoa(i)+"].title"] = "Module title is required!"
			continue
		}
		for j, l := range m.Lessons {
			if strings.TrimSpace(l.Title) == "" {
				errors["modules["+strconv.Itoa(i)+"].lessons["+strconv.Itoa(j)+"].title"] = "Lesson title is required!"
			}
			if l.DurationSeconds < 0 {
				errors["modules["+strconv.Itoa(i)+"].lessons["+strconv.Itoa(j)+"].duration"] = "Duration cannot be negative!"
			}
			for k, b := range l.ContentBlocks {
				if strings.TrimSpace(b.Kind) == "" {
					errors["modules["+strconv.Itoa(i)+"].lessons["+strconv.Itoa(j)+"].content_blocks["+strconv.Itoa(k)+"].type"] = "Block type is required!"
				}
			}
		}
	}

	return errors
}

func SaveCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		if errors := validateCoursePayload(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid Course ID!")
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

func Slug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slugStr := strings.TrimSpace(c.Params("slug"))
		if slugStr == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Course slug is required!")
		}

		c.Locals("courseSlug", slugStr)
		return c.Next()
	}
}

// LegacyRegisterRequest is the body of the legacy course registration
// endpoint. CourseID is the client-side course key, not a catalog id.
type LegacyRegisterRequest struct {
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
}

// LegacyRegister validates the legacy course registration body.
func LegacyRegister() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LegacyRegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		if strings.TrimSpace(reqData.CourseID) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseId": "Course ID is required!",
			})
		}

		c.Locals("validatedLegacyRegister", reqData)
		return c.Next()
	}
}
