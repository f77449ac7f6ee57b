package paymentValidator

import (
	"strings"

	"vibelms/middleware"
	"vibelms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type SubscriptionOrderRequest struct {
	Plan string `json:"plan"`
}

type VerifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
	Plan      string `json:"plan"`
}

type WebinarForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Experience string `json:"experience"`
	Goals      string `json:"goals"`
}

type WebinarVerifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
	WebinarForm
}

func validPlan(plan string) bool {
	return plan == models.TierBasic || plan == models.TierPremium
}

func SubscriptionOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubscriptionOrderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		if !validPlan(reqData.Plan) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"plan": "Plan must be basic or premium!",
			})
		}

		c.Locals("validatedSubscriptionOrder", reqData)
		return c.Next()
	}
}

func validateCallback(reqData *VerifyRequest) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(reqData.OrderID) == "" {
		errors["orderId"] = "Order ID is required!"
	}
	if strings.TrimSpace(reqData.PaymentID) == "" {
		errors["paymentId"] = "Payment ID is required!"
	}
	if strings.TrimSpace(reqData.Signature) == "" {
		errors["signature"] = "Signature is required!"
	}

	return errors
}

func SubscriptionVerify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		errors := validateCallback(reqData)
		if reqData.Plan != "" && !validPlan(reqData.Plan) {
			errors["plan"] = "Plan must be basic or premium!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

func validateWebinarForm(form *WebinarForm) map[string]string {
	errors := make(map[string]string)

	if len(strings.TrimSpace(form.Name)) < 2 {
		errors["name"] = "Name must be at least 2 characters!"
	}
	if err := validate.Var(strings.TrimSpace(form.Email), "required,email"); err != nil {
		errors["email"] = "Valid email is required!"
	}
	if len(strings.TrimSpace(form.Phone)) < 10 {
		errors["phone"] = "Valid phone number is required!"
	}
	if strings.TrimSpace(form.Experience) == "" {
		errors["experience"] = "Experience level is required!"
	}
	if strings.TrimSpace(form.Goals) == "" {
		errors["goals"] = "Goals are required!"
	}

	return errors
}

func WebinarRegister() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WebinarForm)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		if errors := validateWebinarForm(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebinarForm", reqData)
		return c.Next()
	}
}

func WebinarVerify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WebinarVerifyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeValidation, "Invalid request body!")
		}

		errors := validateCallback(&VerifyRequest{
			OrderID:   reqData.OrderID,
			PaymentID: reqData.PaymentID,
			Signature: reqData.Signature,
		})
		for field, msg := range validateWebinarForm(&reqData.WebinarForm) {
			errors[field] = msg
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebinarVerify", reqData)
		return c.Next()
	}
}
