package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"loanlink/config"
	"loanlink/database"
	"loanlink/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gofiber/fiber/v2"
)

func setupRoleTest(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		AdminEmail:         "admin@loanlink.app",
		RoleCacheTTLSecond: 60,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.Database = database.DbInstance{Db: db}
	return db
}

func TestResolveRoleCollapsesConcurrentLookups(t *testing.T) {
	orig := lookupRole
	defer func() { lookupRole = orig }()

	var calls int64
	lookupRole = func(email string) (string, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return models.RoleBorrower, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			role, err := ResolveRole("shared@example.com")
			assert.NoError(t, err)
			assert.Equal(t, models.RoleBorrower, role)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&calls),
		"concurrent lookups for the same email must collapse to one request")
}

func TestResolveRoleFromDatabase(t *testing.T) {
	db := setupRoleTest(t)
	require.NoError(t, db.Create(&models.User{Email: "m@example.com", Role: models.RoleManager, Status: models.UserStatusActive}).Error)

	role, err := ResolveRole("m@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, role)

	_, err = ResolveRole("ghost@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, db.Create(&models.User{Email: "frozen@example.com", Role: models.RoleManager, Status: models.UserStatusSuspended}).Error)
	_, err = ResolveRole("frozen@example.com")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestSuspendedAccountRefusedOnProtectedRoute(t *testing.T) {
	db := setupRoleTest(t)

	manager := models.User{Email: "frozen@example.com", Role: models.RoleManager, Status: models.UserStatusSuspended}
	require.NoError(t, db.Create(&manager).Error)

	app := protectedApp(models.RoleManager, models.RoleAdmin)

	// A still-valid token must not outlive the suspension.
	token, err := GenerateJWT(manager.ID, manager.Name, manager.Role, manager.Email)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestActiveAccountGate(t *testing.T) {
	db := setupRoleTest(t)

	active := models.User{Email: "active@example.com", Role: models.RoleBorrower, Status: models.UserStatusActive}
	frozen := models.User{Email: "frozen@example.com", Role: models.RoleBorrower, Status: models.UserStatusSuspended}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&frozen).Error)

	app := fiber.New()
	app.Get("/me", JWTMiddleware, ActiveAccount, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})

	token, err := GenerateJWT(active.ID, active.Name, active.Role, active.Email)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, err = GenerateJWT(frozen.ID, frozen.Name, frozen.Role, frozen.Email)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// A deleted record is refused too.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", active.ID).Update("is_deleted", true).Error)
	token, err = GenerateJWT(active.ID, active.Name, active.Role, active.Email)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func protectedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, RequireRole(allowed...), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	db := setupRoleTest(t)

	manager := models.User{Email: "manager@example.com", Role: models.RoleManager, Status: models.UserStatusActive}
	borrower := models.User{Email: "borrower@example.com", Role: models.RoleBorrower, Status: models.UserStatusActive}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&borrower).Error)

	app := protectedApp(models.RoleManager, models.RoleAdmin)

	// No credentials at all
	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Manager is admitted
	token, err := GenerateJWT(manager.ID, manager.Name, manager.Role, manager.Email)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Borrower is refused, never silently granted
	token, err = GenerateJWT(borrower.ID, borrower.Name, borrower.Role, borrower.Email)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTMiddlewareAcceptsCookie(t *testing.T) {
	db := setupRoleTest(t)
	admin := models.User{Email: "admin@loanlink.app", Role: models.RoleAdmin, Status: models.UserStatusActive}
	require.NoError(t, db.Create(&admin).Error)

	app := protectedApp(models.RoleAdmin)

	token, err := GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
