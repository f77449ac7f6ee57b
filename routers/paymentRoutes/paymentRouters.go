package paymentRoutes

import (
	controllers "vibelms/controllers/payment"
	validators "vibelms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes wires the checkout endpoints. Webinar routes are
// public since attendees register without an account.
func SetupPaymentRoutes(app *fiber.App, ctl *controllers.PaymentController, protected fiber.Handler) {
	subGroup := app.Group("/api/subscription", protected)
	subGroup.Post("/create", validators.SubscriptionOrder(), ctl.CreateSubscriptionOrder)
	subGroup.Post("/verify", validators.SubscriptionVerify(), ctl.VerifySubscription)

	webinarGroup := app.Group("/api/webinar")
	webinarGroup.Post("/register", validators.WebinarRegister(), ctl.RegisterWebinar)
	webinarGroup.Post("/verify", validators.WebinarVerify(), ctl.VerifyWebinar)

	app.Get("/api/razorpay-key", ctl.Key)
}
