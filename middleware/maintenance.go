package middleware

import (
	"strings"

	"loanlink/database"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
)

// GetPortalSettings loads the singleton settings row, creating it on
// first access.
func GetPortalSettings() (*models.PortalSettings, error) {
	var settings models.PortalSettings
	err := database.Database.Db.FirstOrCreate(&settings, models.PortalSettings{}).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// MaintenanceGuard rejects mutating requests while maintenance mode is
// on. Reads stay available so the portal can render, and the token
// exchange stays open so admins can still sign in and turn it off.
func MaintenanceGuard(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Next()
	}

	path := c.Path()
	if path == "/jwt" || path == "/logout" || strings.HasPrefix(path, "/admin/") {
		return c.Next()
	}

	settings, err := GetPortalSettings()
	if err != nil {
		// A broken settings read must not take the portal down with it.
		return c.Next()
	}
	if !settings.MaintenanceMode {
		return c.Next()
	}

	msg := "LoanLink is under maintenance. Please try again later."
	if settings.Notice != "" {
		msg = settings.Notice
	}
	return JsonResponse(c, fiber.StatusServiceUnavailable, false, msg, nil)
}
