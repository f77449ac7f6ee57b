package middleware

import "github.com/gofiber/fiber/v2"

// Stable machine-readable error codes returned alongside the human message.
const (
	CodeValidation         = "validation_error"
	CodeConflict           = "conflict"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeInvalidSignature   = "invalid_signature"
	CodeServiceUnavailable = "service_unavailable"
	CodeServerError        = "server_error"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse is the failure envelope. Internal details never reach the
// client; callers log them server-side and pass a minimal message here.
func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"code":    code,
		"message": message,
		"data":    nil,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  false,
		"code":    CodeValidation,
		"message": "Validation failed!",
		"data":    errors,
	})
}
