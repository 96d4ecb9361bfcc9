package adminRoutes

import (
	adminController "loanlink/controllers/admin"
	"loanlink/middleware"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	app.Get("/portal-status", adminController.PortalStatus)

	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	adminGroup.Patch("/maintenance", adminController.UpdateMaintenance)
}
