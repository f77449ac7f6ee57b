package siteController

import (
	"log"

	"vibelms/middleware"
	"vibelms/models"
	"vibelms/payments"
	siteValidator "vibelms/validators/site"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SiteController struct {
	DB       *gorm.DB
	Razorpay *payments.RazorpayClient
}

func New(db *gorm.DB, razorpay *payments.RazorpayClient) *SiteController {
	return &SiteController{DB: db, Razorpay: razorpay}
}

// Health reports process liveness plus the state of the two external
// dependencies the frontend cares about.
func (ctl *SiteController) Health(c *fiber.Ctx) error {
	dbState := "connected"
	if sqlDB, err := ctl.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbState = "disconnected"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", fiber.Map{
		"status":             "ok",
		"database":           dbState,
		"razorpayConfigured": ctl.Razorpay != nil,
	})
}

func (ctl *SiteController) SubmitContact(c *fiber.Ctx) error {
	reqData := c.Locals("validatedContact").(*siteValidator.ContactRequest)

	contact := models.Contact{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Subject: reqData.Subject,
		Message: reqData.Message,
	}
	if err := ctl.DB.Create(&contact).Error; err != nil {
		log.Printf("Error saving contact message: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error submitting message!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message received. We will get back to you soon!", fiber.Map{
		"id": contact.ID,
	})
}

// TrackEvent is best effort. A malformed body is still a 400, but storage
// failures are swallowed so a flaky analytics table never breaks the client.
func (ctl *SiteController) TrackEvent(c *fiber.Ctx) error {
	event := new(models.AnalyticsEvent)
	if err := c.BodyParser(event); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
	}

	if event.Event == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"event": "Event name is required!",
		})
	}

	event.ID = 0
	event.UserAgent = c.Get("User-Agent")
	event.IP = c.IP()

	if err := ctl.DB.Create(event).Error; err != nil {
		log.Printf("Error saving analytics event: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event tracked.", nil)
}
