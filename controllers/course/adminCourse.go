package courseController

import (
	"errors"
	"fmt"
	"log"

	"vibelms/middleware"
	"vibelms/models"
	courseModels "vibelms/models/course"
	courseValidator "vibelms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// uniqueSlug derives a slug from the title, suffixing a counter until it is
// free. excludeID skips the course being updated.
func uniqueSlug(db *gorm.DB, title string, excludeID uint) string {
	base := slug.Make(title)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		db.Model(&courseModels.Course{}).Where("slug = ? AND id <> ?", candidate, excludeID).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func orUUID(uid string) string {
	if uid != "" {
		return uid
	}
	return uuid.NewString()
}

func buildModules(payload []courseValidator.ModulePayload) []courseModels.Module {
	modules := make([]courseModels.Module, 0, len(payload))
	for _, m := range payload {
		module := courseModels.Module{
			UID:        orUUID(m.UID),
			Title:      m.Title,
			OrderIndex: m.Order,
		}
		for _, l := range m.Lessons {
			lesson := courseModels.Lesson{
				UID:             orUUID(l.UID),
				Title:           l.Title,
				OrderIndex:      l.Order,
				DurationSeconds: l.DurationSeconds,
				VideoURL:        l.VideoURL,
			}
			for _, b := range l.ContentBlocks {
				payloadJSON := b.Payload
				if len(payloadJSON) == 0 {
					payloadJSON = []byte("{}")
				}
				lesson.ContentBlocks = append(lesson.ContentBlocks, courseModels.ContentBlock{
					UID:        orUUID(b.UID),
					Kind:       b.Kind,
					OrderIndex: b.Order,
					Payload:    datatypes.JSON(payloadJSON),
				})
			}
			module.Lessons = append(module.Lessons, lesson)
		}
		modules = append(modules, module)
	}
	return modules
}

func (ctl *CourseController) Create(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	reqData := c.Locals("validatedCourse").(*courseValidator.CoursePayload)

	level := reqData.Level
	if level == "" {
		level = courseModels.LevelBeginner
	}

	crs := courseModels.Course{
		Title:       reqData.Title,
		Slug:        uniqueSlug(ctl.DB, reqData.Title, 0),
		Description: reqData.Description,
		Level:       level,
		PricePaise:  reqData.Price,
		Tags:        reqData.Tags,
		OwnerID:     user.ID,
		Modules:     buildModules(reqData.Modules),
	}
	if reqData.IsPublished != nil {
		crs.IsPublished = *reqData.IsPublished
	}

	if err := ctl.DB.Create(&crs).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to create course!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course": crs,
	})
}

// Update replaces the course's scalar fields and its whole module/lesson
// tree. Authoring clients send the full tree, so replace-in-transaction is
// simpler than diffing; module and lesson UIDs from the payload survive the
// rebuild, which keeps existing progress records valid.
func (ctl *CourseController) Update(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourse").(*courseValidator.CoursePayload)

	var crs courseModels.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to fetch course!")
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", crs.ID).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			var lessonIDs []uint
			if err := tx.Model(&courseModels.Lesson{}).Where("module_id IN ?", moduleIDs).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
			if len(lessonIDs) > 0 {
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&courseModels.ContentBlock{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", lessonIDs).Delete(&courseModels.Lesson{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", moduleIDs).Delete(&courseModels.Module{}).Error; err != nil {
				return err
			}
		}

		if crs.Title != reqData.Title {
			crs.Slug = uniqueSlug(tx, reqData.Title, crs.ID)
		}
		crs.Title = reqData.Title
		crs.Description = reqData.Description
		if reqData.Level != "" {
			crs.Level = reqData.Level
		}
		crs.PricePaise = reqData.Price
		crs.Tags = reqData.Tags
		if reqData.IsPublished != nil {
			crs.IsPublished = *reqData.IsPublished
		}
		crs.Modules = buildModules(reqData.Modules)

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&crs).Error
	})
	if err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to update course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", fiber.Map{
		"course": crs,
	})
}

func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var crs courseModels.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to fetch course!")
	}

	if err := ctl.DB.Model(&crs).Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to delete course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
