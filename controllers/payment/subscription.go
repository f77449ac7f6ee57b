package paymentController

import (
	"errors"
	"fmt"
	"log"
	"time"

	"vibelms/config"
	"vibelms/middleware"
	"vibelms/models"
	"vibelms/payments"
	"vibelms/utils"
	paymentValidator "vibelms/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plan prices in paise.
const (
	planBasicPaise   = 99900  // ₹999
	planPremiumPaise = 199900 // ₹1999
	webinarSeatPaise = 9900   // ₹99
)

type PaymentController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Razorpay *payments.RazorpayClient
	Mailer   *utils.Mailer
}

func New(db *gorm.DB, cfg *config.Config, razorpay *payments.RazorpayClient, mailer *utils.Mailer) *PaymentController {
	return &PaymentController{DB: db, Cfg: cfg, Razorpay: razorpay, Mailer: mailer}
}

// gatewayUnavailable answers for every payment route when the client was
// never initialized. Missing credentials are a deploy problem, not a
// transient one, so there is no retry.
func (ctl *PaymentController) gatewayUnavailable(c *fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, middleware.CodeServiceUnavailable, "Payment service not available!")
}

func planAmount(plan string) int64 {
	if plan == models.TierPremium {
		return planPremiumPaise
	}
	return planBasicPaise
}

func (ctl *PaymentController) CreateSubscriptionOrder(c *fiber.Ctx) error {
	if ctl.Razorpay == nil {
		return ctl.gatewayUnavailable(c)
	}

	user := c.Locals("user").(*models.User)
	reqData := c.Locals("validatedSubscriptionOrder").(*paymentValidator.SubscriptionOrderRequest)

	amount := planAmount(reqData.Plan)
	receipt := fmt.Sprintf("sub_%d_%d", user.ID, time.Now().Unix())

	order, err := ctl.Razorpay.CreateOrder(amount, "INR", receipt, map[string]string{
		"userId": fmt.Sprintf("%d", user.ID),
		"plan":   reqData.Plan,
	})
	if err != nil {
		log.Printf("Subscription order creation failed for user %d: %v", user.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error creating subscription order!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", fiber.Map{
		"orderId": order.ID,
		"amount":  amount,
	})
}

// VerifySubscription validates the payment callback signature and activates
// the purchased tier for one year. A replayed callback for an already
// processed order is a no-op.
func (ctl *PaymentController) VerifySubscription(c *fiber.Ctx) error {
	if ctl.Razorpay == nil {
		return ctl.gatewayUnavailable(c)
	}

	user := c.Locals("user").(*models.User)
	reqData := c.Locals("validatedVerify").(*paymentValidator.VerifyRequest)

	if !ctl.Razorpay.VerifySignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		log.Printf("Invalid payment signature for order %s (user %d)", reqData.OrderID, user.ID)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidSignature, "Invalid payment signature!")
	}

	var existing models.PaymentEvent
	if err := ctl.DB.Where("order_id = ?", reqData.OrderID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription already activated.", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking payment event: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error verifying subscription!")
	}

	plan := reqData.Plan
	if plan == "" {
		plan = models.TierBasic
	}

	startDate := time.Now()
	endDate := startDate.AddDate(1, 0, 0)

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		userID := user.ID
		event := models.PaymentEvent{
			OrderID:   reqData.OrderID,
			PaymentID: reqData.PaymentID,
			Purpose:   models.PaymentPurposeSubscription,
			UserID:    &userID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"subscription_tier":       plan,
			"subscription_is_active":  true,
			"subscription_start_date": startDate,
			"subscription_end_date":   endDate,
		}).Error
	})
	if err != nil {
		log.Printf("Subscription activation failed for user %d order %s: %v", user.ID, reqData.OrderID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error verifying subscription!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription activated successfully.", nil)
}

// Key exposes the publishable key id for the checkout widget.
func (ctl *PaymentController) Key(c *fiber.Ctx) error {
	key := ""
	if ctl.Razorpay != nil {
		key = ctl.Razorpay.KeyID
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Key fetched successfully!", fiber.Map{
		"key": key,
	})
}
