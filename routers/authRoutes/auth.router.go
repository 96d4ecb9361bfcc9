package authRoutes

import (
	authController "loanlink/controllers/auth"
	"loanlink/middleware"
	authValidator "loanlink/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/jwt", authValidator.IssueToken(), authController.IssueToken)
	app.Post("/logout", authController.Logout)
	app.Get("/user/role/:email", middleware.JWTMiddleware, authController.GetRole)
}
