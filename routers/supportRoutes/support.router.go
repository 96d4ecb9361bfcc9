package supportRoutes

import (
	supportController "loanlink/controllers/support"
	"loanlink/middleware"
	"loanlink/models"
	supportValidator "loanlink/validators/support"

	"github.com/gofiber/fiber/v2"
)

func SetupSupportRoutes(app *fiber.App) {
	app.Post("/contact", supportValidator.Contact(), supportController.Create)

	supportGroup := app.Group("/support", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	supportGroup.Get("/messages", supportController.List)
	supportGroup.Patch("/messages/:id", supportController.UpdateStatus)
}
