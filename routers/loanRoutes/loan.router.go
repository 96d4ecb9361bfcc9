package loanRoutes

import (
	loanController "loanlink/controllers/loan"
	"loanlink/middleware"
	"loanlink/models"
	loanValidator "loanlink/validators/loan"

	"github.com/gofiber/fiber/v2"
)

func SetupLoanRoutes(app *fiber.App) {
	loanGroup := app.Group("/loans")

	loanGroup.Get("/", loanController.List)
	loanGroup.Get("/stats", loanController.Stats)
	loanGroup.Get("/:id", loanController.Get)
	loanGroup.Get("/:id/emi", loanController.EMISchedule)

	loanGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleManager),
		loanValidator.SaveLoan(), loanController.Create)
	loanGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleManager),
		loanValidator.SaveLoan(), loanController.Update)
	loanGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleManager, models.RoleAdmin), loanController.Delete)
}
