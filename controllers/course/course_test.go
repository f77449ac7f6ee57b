package courseController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibelms/config"
	"vibelms/database"
	"vibelms/middleware"
	"vibelms/models"
	courseModels "vibelms/models/course"
	courseValidator "vibelms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app        *fiber.App
	db         *gorm.DB
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		AdminEmails: []string{"admin@example.com"},
	}

	admin := models.User{Name: "Admin", Email: "admin@example.com"}
	require.NoError(t, db.Create(&admin).Error)
	learner := models.User{Name: "Learner", Email: "learner@example.com"}
	require.NoError(t, db.Create(&learner).Error)

	adminToken, err := middleware.GenerateJWT(cfg.JWTSecret, admin.ID)
	require.NoError(t, err)
	userToken, err := middleware.GenerateJWT(cfg.JWTSecret, learner.ID)
	require.NoError(t, err)

	ctl := New(db, cfg)
	protected := middleware.Protected(db, cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(db, cfg.JWTSecret)
	adminOnly := middleware.AdminOnly(cfg)

	app := fiber.New()
	app.Get("/api/courses", optionalAuth, ctl.List)
	app.Post("/api/courses/register", protected, courseValidator.LegacyRegister(), ctl.LegacyRegister)
	app.Get("/api/courses/my-courses", protected, ctl.LegacyMyCourses)
	app.Get("/api/courses/:slug", optionalAuth, courseValidator.Slug(), ctl.GetBySlug)
	app.Post("/api/courses", protected, adminOnly, courseValidator.SaveCourse(), ctl.Create)
	app.Put("/api/courses/:id", protected, adminOnly, courseValidator.CourseID(), courseValidator.SaveCourse(), ctl.Update)
	app.Delete("/api/courses/:id", protected, adminOnly, courseValidator.CourseID(), ctl.Delete)

	return &testEnv{app: app, db: db, adminToken: adminToken, userToken: userToken}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func coursePayload(title string, published bool) fiber.Map {
	return fiber.Map{
		"title":        title,
		"description":  "Learn by building",
		"level":        "beginner",
		"price":        99900,
		"tags":         []string{"go", "web"},
		"is_published": published,
		"modules": []fiber.Map{
			{
				"title": "Module One",
				"order": 0,
				"lessons": []fiber.Map{
					{
						"title": "Lesson One",
						"order": 0,
						"content_blocks": []fiber.Map{
							{"type": "text", "order": 0, "payload": fiber.Map{"text": "welcome"}},
						},
					},
				},
			},
		},
	}
}

func TestCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/courses", env.userToken, coursePayload("Blocked", true))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden", body["code"])

	resp, _ = env.request(t, http.MethodPost, "/api/courses", "", coursePayload("Blocked", true))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAssignsSlugAndUIDs(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Vibe Coding 101", true))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	crs := body["data"].(map[string]interface{})["course"].(map[string]interface{})
	assert.Equal(t, "vibe-coding-101", crs["slug"])

	modules := crs["modules"].([]interface{})
	require.Len(t, modules, 1)
	module := modules[0].(map[string]interface{})
	assert.NotEmpty(t, module["uid"])

	lessons := module["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	assert.NotEmpty(t, lessons[0].(map[string]interface{})["uid"])

	// Same title gets a suffixed slug.
	resp, body = env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Vibe Coding 101", true))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	crs = body["data"].(map[string]interface{})["course"].(map[string]interface{})
	assert.Equal(t, "vibe-coding-101-2", crs["slug"])
}

func TestListShowsOnlyPublished(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Published Course", true))
	env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Draft Course", false))

	_, body := env.request(t, http.MethodGet, "/api/courses", "", nil)
	courses := body["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Published Course", courses[0].(map[string]interface{})["title"])

	// Admin with the flag sees the draft too.
	_, body = env.request(t, http.MethodGet, "/api/courses?includeUnpublished=true", env.adminToken, nil)
	courses = body["data"].(map[string]interface{})["courses"].([]interface{})
	assert.Len(t, courses, 2)

	// The flag does nothing for a regular user.
	_, body = env.request(t, http.MethodGet, "/api/courses?includeUnpublished=true", env.userToken, nil)
	courses = body["data"].(map[string]interface{})["courses"].([]interface{})
	assert.Len(t, courses, 1)
}

func TestDraftVisibility(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Secret Draft", false))

	// Anonymous and non-owner get NotFound, not Forbidden.
	resp, body := env.request(t, http.MethodGet, "/api/courses/secret-draft", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", body["code"])

	resp, _ = env.request(t, http.MethodGet, "/api/courses/secret-draft", env.userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner (also admin here) sees it.
	resp, _ = env.request(t, http.MethodGet, "/api/courses/secret-draft", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateReplacesTreeAndKeepsUIDs(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Original Title", true))
	crs := body["data"].(map[string]interface{})["course"].(map[string]interface{})
	courseID := int(crs["ID"].(float64))
	moduleUID := crs["modules"].([]interface{})[0].(map[string]interface{})["uid"].(string)

	update := fiber.Map{
		"title":        "Renamed Title",
		"description":  "Updated",
		"price":        199900,
		"is_published": true,
		"modules": []fiber.Map{
			{
				"uid":   moduleUID,
				"title": "Module One Renamed",
				"order": 0,
				"lessons": []fiber.Map{
					{"title": "New Lesson", "order": 0},
				},
			},
		},
	}

	resp, body := env.request(t, http.MethodPut, fmt.Sprintf("/api/courses/%d", courseID), env.adminToken, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := body["data"].(map[string]interface{})["course"].(map[string]interface{})
	assert.Equal(t, "renamed-title", updated["slug"])
	modules := updated["modules"].([]interface{})
	require.Len(t, modules, 1)
	assert.Equal(t, moduleUID, modules[0].(map[string]interface{})["uid"])

	// Only one module row remains for the course.
	var count int64
	env.db.Model(&courseModels.Module{}).Where("course_id = ?", courseID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLegacyRegistration(t *testing.T) {
	env := newTestEnv(t)

	payload := fiber.Map{"courseId": "vibe-101", "courseTitle": "Vibe Coding 101"}

	resp, body := env.request(t, http.MethodPost, "/api/courses/register", env.userToken, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reg := body["data"].(map[string]interface{})
	assert.Equal(t, "vibe-101", reg["course_id"])
	assert.Equal(t, "active", reg["status"])

	// Duplicate registration for the same course key is rejected.
	resp, body = env.request(t, http.MethodPost, "/api/courses/register", env.userToken, payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "conflict", body["code"])

	_, body = env.request(t, http.MethodGet, "/api/courses/my-courses", env.userToken, nil)
	courses := body["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Vibe Coding 101", courses[0].(map[string]interface{})["course_title"])

	// Missing course key fails validation.
	resp, _ = env.request(t, http.MethodPost, "/api/courses/register", env.userToken, fiber.Map{"courseTitle": "No Key"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteHidesCourse(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.request(t, http.MethodPost, "/api/courses", env.adminToken, coursePayload("Doomed", true))
	crs := body["data"].(map[string]interface{})["course"].(map[string]interface{})
	courseID := int(crs["ID"].(float64))

	resp, _ := env.request(t, http.MethodDelete, fmt.Sprintf("/api/courses/%d", courseID), env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.request(t, http.MethodGet, "/api/courses/doomed", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Deleting again is NotFound.
	resp, _ = env.request(t, http.MethodDelete, fmt.Sprintf("/api/courses/%d", courseID), env.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
