package userValidator

import (
	"loanlink/middleware"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
)

// RolePatch validates a role change against the closed role set.
func RolePatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Role string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidRole(reqData.Role) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be borrower, manager or admin!",
			})
		}

		return c.Next()
	}
}

// StatusPatch validates a suspend/reactivate request.
func StatusPatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != models.UserStatusActive && reqData.Status != models.UserStatusSuspended {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be active or suspended!",
			})
		}

		return c.Next()
	}
}
