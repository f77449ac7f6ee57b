package authController

import (
	"errors"
	"log"

	"vibelms/middleware"
	"vibelms/models"
	authValidator "vibelms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LinkedInLogin exchanges an OAuth authorization code for a session token.
// Accounts are keyed by email: members without a shared address get a
// deterministic placeholder, and an existing password account with the same
// email gets the LinkedIn identity linked onto it instead of a duplicate.
func (ctl *AuthController) LinkedInLogin(c *fiber.Ctx) error {
	if ctl.LinkedIn == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotImplemented, middleware.CodeServiceUnavailable, "LinkedIn login is not configured!")
	}

	reqData := c.Locals("validatedLinkedIn").(*authValidator.LinkedInRequest)

	profile, err := ctl.LinkedIn.Authenticate(reqData.Code)
	if err != nil {
		log.Printf("LinkedIn authentication failed: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, middleware.CodeServiceUnavailable, "LinkedIn authentication failed!")
	}

	email := profile.Email
	if email == "" {
		email = profile.FallbackEmail()
	}

	var user models.User
	err = ctl.DB.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:           profile.DisplayName(),
			Email:          email,
			Password:       "", // OAuth-only account
			LinkedInID:     profile.ID,
			ProfilePicture: profile.PictureURL,
			Subscription: models.Subscription{
				Tier:     models.TierFree,
				IsActive: false,
			},
		}
		if err := ctl.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating LinkedIn user: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to create user!")
		}
	case err != nil:
		log.Printf("Error looking up LinkedIn user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to process your request!")
	default:
		if user.LinkedInID == "" {
			user.LinkedInID = profile.ID
			user.ProfilePicture = profile.PictureURL
			if err := ctl.DB.Save(&user).Error; err != nil {
				log.Printf("Error linking LinkedIn identity: %v", err)
				return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to process your request!")
			}
		}
	}

	token, err := middleware.GenerateJWT(ctl.Cfg.JWTSecret, user.ID)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to generate token!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user.View(),
	})
}
