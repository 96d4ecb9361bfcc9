package testutil

import (
	"fmt"
	"testing"
	"time"

	"loanlink/config"
	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB wires an isolated in-memory database and a minimal config
// into the package globals used by handlers.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:               "0",
		JWTKey:             "test-secret",
		AdminEmail:         "admin@loanlink.app",
		ApplicationFee:     1000,
		FeeCurrency:        "usd",
		RoleCacheTTLSecond: 60,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	return db
}

// CreateUser inserts a user record.
func CreateUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:       email,
		Name:        "Test User",
		Role:        role,
		Status:      models.UserStatusActive,
		LastLoginAt: time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// AuthToken creates a user (unless it exists) and returns a bearer token
// for it.
func AuthToken(t *testing.T, db *gorm.DB, email, role string) string {
	t.Helper()

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		user = *CreateUser(t, db, email, role)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// CreateApplication inserts a loan application in the given lifecycle
// state.
func CreateApplication(t *testing.T, db *gorm.DB, email, status, feeStatus string) *models.LoanApplication {
	t.Helper()

	app := &models.LoanApplication{
		Ref:                  uuid.NewString(),
		ApplicantEmail:       email,
		FirstName:            "Jordan",
		LastName:             "Doe",
		LoanTitle:            "Micro Loan",
		Category:             "Short Term Debt",
		LoanAmount:           5000,
		MonthlyIncome:        2500,
		IncomeSource:         "Acme Corp",
		NationalID:           "A1234567",
		ContactNumber:        "+15551234567",
		Address:              "1 Main St, Springfield",
		LoanReason:           "Working capital",
		Status:               status,
		ApplicationFeeStatus: feeStatus,
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	return app
}
