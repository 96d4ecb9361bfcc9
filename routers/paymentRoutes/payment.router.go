package paymentRoutes

import (
	paymentController "loanlink/controllers/payment"
	"loanlink/middleware"
	paymentValidator "loanlink/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	app.Post("/create-payment-intent", middleware.JWTMiddleware, middleware.ActiveAccount,
		paymentValidator.CreateIntent(), paymentController.CreateIntent)
}
