package authController

import (
	"errors"
	"log"

	"vibelms/config"
	"vibelms/middleware"
	"vibelms/models"
	"vibelms/payments"
	authValidator "vibelms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	LinkedIn *payments.LinkedInClient
}

func New(db *gorm.DB, cfg *config.Config, linkedIn *payments.LinkedInClient) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, LinkedIn: linkedIn}
}

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedRegister").(*authValidator.RegisterRequest)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to process your request!")
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Subscription: models.Subscription{
			Tier:     models.TierFree,
			IsActive: false,
		},
	}

	// The unique constraint on email is the only duplicate check: a
	// pre-lookup would race with a concurrent registration anyway.
	if err := ctl.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeConflict, "Email is already registered!")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to register user!")
	}

	token, err := middleware.GenerateJWT(ctl.Cfg.JWTSecret, newUser.ID)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Failed to generate token!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token": token,
		"user":  newUser.View(),
	})
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	// Unknown email, wrong password and OAuth-only accounts all fail the
	// same way so the response does not reveal which one it was.
	invalidCredentials := func() error {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidCredentials, "Invalid credentials!")
	}

	var user models.User
	if err := ctl.DB.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return invalidCredentials()
	}

	if !user.HasPasswordLogin() {
		return invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return invalidCredentials()
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

func (ctl *AuthController) Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.CodeUnauthorized, "Unauthorized!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", fiber.Map{
		"user": user.View(),
	})
}
