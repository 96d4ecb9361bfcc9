package adminController

import (
	"log"

	"loanlink/database"
	"loanlink/middleware"

	"github.com/gofiber/fiber/v2"
)

// PortalStatus exposes the global application state so clients can
// render the maintenance notice.
func PortalStatus(c *fiber.Ctx) error {
	settings, err := middleware.GetPortalSettings()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read portal status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Portal status.", fiber.Map{
		"maintenanceMode": settings.MaintenanceMode,
		"notice":          settings.Notice,
	})
}

// UpdateMaintenance toggles maintenance mode.
func UpdateMaintenance(c *fiber.Ctx) error {
	reqData := new(struct {
		MaintenanceMode bool   `json:"maintenanceMode"`
		Notice          string `json:"notice"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	settings, err := middleware.GetPortalSettings()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read portal status!", nil)
	}

	updates := map[string]interface{}{
		"maintenance_mode": reqData.MaintenanceMode,
		"notice":           reqData.Notice,
	}
	if err := database.Database.Db.Model(settings).Updates(updates).Error; err != nil {
		log.Printf("Error updating portal settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update portal status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Portal status updated.", fiber.Map{
		"maintenanceMode": reqData.MaintenanceMode,
		"notice":          reqData.Notice,
	})
}
