package courseController

import (
	"errors"

	"vibelms/config"
	"vibelms/middleware"
	"vibelms/models"
	courseModels "vibelms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

// withTree preloads modules, lessons and content blocks in display order.
func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Modules.Lessons.ContentBlocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		})
}

// List returns published courses without the lesson tree. Allow-listed
// admins can pass ?includeUnpublished=true to see drafts as well.
func (ctl *CourseController) List(c *fiber.Ctx) error {
	query := ctl.DB.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	includeUnpublished := c.Query("includeUnpublished") == "true" && middleware.IsAdmin(c, ctl.Cfg)
	if !includeUnpublished {
		query = query.Where("is_published = ?", true)
	}

	var courses []courseModels.Course
	if err := query.Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to fetch courses!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetBySlug returns one course with its full tree. A draft is visible only
// to its owner or an admin; everyone else gets NotFound so drafts do not
// leak.
func (ctl *CourseController) GetBySlug(c *fiber.Ctx) error {
	slugStr := c.Locals("courseSlug").(string)

	var crs courseModels.Course
	err := withTree(ctl.DB).Where("slug = ? AND is_deleted = ?", slugStr, false).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to fetch course!")
	}

	if !crs.IsPublished {
		user, ok := c.Locals("user").(*models.User)
		isOwner := ok && user.ID == crs.OwnerID
		if !isOwner && !middleware.IsAdmin(c, ctl.Cfg) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": crs,
	})
}
