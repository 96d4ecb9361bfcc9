package paymentValidator

import (
	"strings"

	"loanlink/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateIntent validates the intent request.
func CreateIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ApplicationID uint `json:"applicationId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ApplicationID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"applicationId": "Application id is required!",
			})
		}

		return c.Next()
	}
}

// Confirm validates the payment confirmation.
func Confirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TransactionID string `json:"transactionId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.TransactionID) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"transactionId": "Transaction id is required!",
			})
		}

		return c.Next()
	}
}
