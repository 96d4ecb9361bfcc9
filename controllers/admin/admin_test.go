package adminController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loanlink/middleware"
	"loanlink/models"
	"loanlink/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.MaintenanceGuard)

	app.Get("/portal-status", PortalStatus)
	app.Patch("/admin/maintenance", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin), UpdateMaintenance)

	// A plain mutating endpoint to observe the guard from the outside.
	app.Post("/apply-loan", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "ok", nil)
	})

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func TestPortalStatusDefaultsOff(t *testing.T) {
	testutil.SetupTestDB(t)
	app := newTestApp()

	resp := doJSON(t, app, "GET", "/portal-status", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			MaintenanceMode bool `json:"maintenanceMode"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.False(t, envelope.Data.MaintenanceMode)
}

func TestMaintenanceModeBlocksWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := newTestApp()

	admin := testutil.AuthToken(t, db, "admin@loanlink.app", models.RoleAdmin)

	resp := doJSON(t, app, "PATCH", "/admin/maintenance", admin, map[string]interface{}{
		"maintenanceMode": true,
		"notice":          "Back at noon.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Writes are refused with the configured notice.
	resp = doJSON(t, app, "POST", "/apply-loan", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "Back at noon.", envelope.Message)

	// Reads still work so the portal can render the banner.
	resp = doJSON(t, app, "GET", "/portal-status", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The admin surface stays open so maintenance can be turned off again.
	resp = doJSON(t, app, "PATCH", "/admin/maintenance", admin, map[string]interface{}{
		"maintenanceMode": false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/apply-loan", "", nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUpdateMaintenanceIsAdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := newTestApp()

	manager := testutil.AuthToken(t, db, "manager@example.com", models.RoleManager)
	resp := doJSON(t, app, "PATCH", "/admin/maintenance", manager, map[string]interface{}{
		"maintenanceMode": true,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
