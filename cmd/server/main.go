package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"arcadia-pos/internal/adapters/http/middleware"
	"arcadia-pos/internal/adapters/http/routes"
	"arcadia-pos/internal/adapters/http/ws"
	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "arcadia-pos/docs" // Swagger docs
)

// @title Arcadia POS API
// @version 1.0
// @description Point of sale backend for a restaurant and gaming lounge: tables, sessions, orders, kitchen tickets, reservations and billing.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@arcadialounge.com

// @host api.arcadialounge.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin account, printers, tables and the starter menu
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Websocket hub fanning out kitchen tickets to KDS screens
	hub := ws.NewHub()
	go hub.Run()

	// Cron jobs: no-show sweep, stale session audit, revenue snapshot
	cronService := services.NewCronService(db)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Arcadia POS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, hub and cfg for dependency injection)
	routes.Setup(app, db, hub, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
