package userRoutes

import (
	userController "loanlink/controllers/user"
	"loanlink/middleware"
	"loanlink/models"
	userValidator "loanlink/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	userGroup.Get("/", userController.List)
	userGroup.Patch("/role/:email", userValidator.RolePatch(), userController.UpdateRole)
	userGroup.Patch("/status/:email", userValidator.StatusPatch(), userController.UpdateStatus)
	userGroup.Delete("/:email", userController.Delete)
}
