package applicationRoutes

import (
	applicationController "loanlink/controllers/application"
	paymentController "loanlink/controllers/payment"
	"loanlink/middleware"
	"loanlink/models"
	applicationValidator "loanlink/validators/application"
	paymentValidator "loanlink/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupApplicationRoutes(app *fiber.App) {
	app.Post("/apply-loan", middleware.JWTMiddleware, middleware.ActiveAccount,
		applicationValidator.Apply(), applicationController.Apply)

	appGroup := app.Group("/loan-applications", middleware.JWTMiddleware, middleware.ActiveAccount)

	appGroup.Get("/", middleware.RequireRole(models.RoleManager, models.RoleAdmin), applicationController.List)
	appGroup.Get("/user/:email", applicationController.ListByUser)
	appGroup.Get("/:id", applicationController.Get)
	appGroup.Patch("/payment/:id", paymentValidator.Confirm(), paymentController.ConfirmFeePayment)
	appGroup.Patch("/:id", applicationValidator.StatusPatch(),
		middleware.RequireRole(models.RoleManager, models.RoleAdmin), applicationController.UpdateStatus)
	appGroup.Delete("/:id", applicationController.Cancel)
}
