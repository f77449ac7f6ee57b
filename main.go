package main

import (
	"log"

	"vibelms/config"
	authController "vibelms/controllers/auth"
	courseController "vibelms/controllers/course"
	lmsController "vibelms/controllers/lms"
	paymentController "vibelms/controllers/payment"
	siteController "vibelms/controllers/site"
	"vibelms/database"
	"vibelms/middleware"
	"vibelms/payments"
	authRoutes "vibelms/routers/authRoutes"
	courseRoutes "vibelms/routers/courseRoutes"
	lmsRoutes "vibelms/routers/lmsRoutes"
	paymentRoutes "vibelms/routers/paymentRoutes"
	siteRoutes "vibelms/routers/siteRoutes"
	"vibelms/services"
	"vibelms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Outbound clients stay nil when credentials are missing; the
	// controllers answer 503/501 for the affected routes.
	var razorpay *payments.RazorpayClient
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		razorpay = payments.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	var linkedIn *payments.LinkedInClient
	if cfg.LinkedInClientID != "" && cfg.LinkedInClientSecret != "" {
		linkedIn = payments.NewLinkedInClient(cfg.LinkedInClientID, cfg.LinkedInClientSecret, cfg.LinkedInRedirectURI)
	}

	mailer := utils.NewMailer(cfg.SendgridAPIKey, cfg.EmailSender)
	progress := services.NewProgressService(db)

	protected := middleware.Protected(db, cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(db, cfg.JWTSecret)
	adminOnly := middleware.AdminOnly(cfg)

	authRoutes.SetupAuthRoutes(app, authController.New(db, cfg, linkedIn), protected)
	courseRoutes.SetupCourseRoutes(app, courseController.New(db, cfg), protected, optionalAuth, adminOnly)
	lmsRoutes.SetupLMSRoutes(app, lmsController.New(db, cfg, progress, mailer), protected)
	paymentRoutes.SetupPaymentRoutes(app, paymentController.New(db, cfg, razorpay, mailer), protected)
	siteRoutes.SetupSiteRoutes(app, siteController.New(db, razorpay))

	utils.StartSubscriptionScheduler(db)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
