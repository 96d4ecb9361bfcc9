package main

import (
	"log"

	"loanlink/config"
	"loanlink/database"
	"loanlink/middleware"
	adminRoutes "loanlink/routers/adminRoutes"
	applicationRoutes "loanlink/routers/applicationRoutes"
	authRoutes "loanlink/routers/authRoutes"
	loanRoutes "loanlink/routers/loanRoutes"
	paymentRoutes "loanlink/routers/paymentRoutes"
	supportRoutes "loanlink/routers/supportRoutes"
	userRoutes "loanlink/routers/userRoutes"
	"loanlink/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.ConnectRedis()
	utils.InitStripe()
	utils.InitFirebase()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: config.AppConfig.AllowedOrigins != "*",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use(middleware.MaintenanceGuard)

	authRoutes.SetupAuthRoutes(app)
	loanRoutes.SetupLoanRoutes(app)
	applicationRoutes.SetupApplicationRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	userRoutes.SetupUserRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	supportRoutes.SetupSupportRoutes(app)

	utils.InitializeReconcileScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
