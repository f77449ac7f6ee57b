package paymentController

import (
	"errors"
	"fmt"
	"log"
	"time"

	"vibelms/middleware"
	"vibelms/models"
	paymentValidator "vibelms/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (ctl *PaymentController) RegisterWebinar(c *fiber.Ctx) error {
	if ctl.Razorpay == nil {
		return ctl.gatewayUnavailable(c)
	}

	reqData := c.Locals("validatedWebinarForm").(*paymentValidator.WebinarForm)

	receipt := fmt.Sprintf("web_%d", time.Now().Unix())
	order, err := ctl.Razorpay.CreateOrder(webinarSeatPaise, "INR", receipt, map[string]string{
		"email":   reqData.Email,
		"purpose": models.PaymentPurposeWebinar,
	})
	if err != nil {
		log.Printf("Webinar order creation failed for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error creating webinar order!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", fiber.Map{
		"orderId": order.ID,
		"amount":  int64(webinarSeatPaise),
	})
}

// VerifyWebinar records the seat once the signature checks out. Duplicate
// callbacks for the same order do not create a second registration.
func (ctl *PaymentController) VerifyWebinar(c *fiber.Ctx) error {
	if ctl.Razorpay == nil {
		return ctl.gatewayUnavailable(c)
	}

	reqData := c.Locals("validatedWebinarVerify").(*paymentValidator.WebinarVerifyRequest)

	if !ctl.Razorpay.VerifySignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		log.Printf("Invalid webinar payment signature for order %s", reqData.OrderID)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidSignature, "Invalid payment signature!")
	}

	var existing models.PaymentEvent
	if err := ctl.DB.Where("order_id = ?", reqData.OrderID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration already confirmed.", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking payment event: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error verifying registration!")
	}

	registration := models.WebinarRegistration{
		Name:        reqData.Name,
		Email:       reqData.Email,
		Phone:       reqData.Phone,
		Experience:  reqData.Experience,
		Goals:       reqData.Goals,
		OrderID:     reqData.OrderID,
		PaymentID:   reqData.PaymentID,
		AmountPaise: webinarSeatPaise,
		Status:      "completed",
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		event := models.PaymentEvent{
			OrderID:   reqData.OrderID,
			PaymentID: reqData.PaymentID,
			Purpose:   models.PaymentPurposeWebinar,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return tx.Create(&registration).Error
	})
	if err != nil {
		log.Printf("Webinar registration failed for order %s: %v", reqData.OrderID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeServerError, "Error verifying registration!")
	}

	if ctl.Mailer != nil {
		go func(name, email string) {
			if err := ctl.Mailer.SendWebinarConfirmation(name, email); err != nil {
				log.Printf("Webinar confirmation email failed for %s: %v", email, err)
			}
		}(registration.Name, registration.Email)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration confirmed successfully.", fiber.Map{
		"registrationId": registration.ID,
	})
}
