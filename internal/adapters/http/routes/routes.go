package routes

import (
	"arcadia-pos/internal/adapters/http/handlers"
	"arcadia-pos/internal/adapters/http/middleware"
	"arcadia-pos/internal/adapters/http/ws"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, hub *ws.Hub, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)
	printerRepo := repositories.NewPrinterRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	tableService := services.NewTableService(tableRepo, sessionRepo)
	menuService := services.NewMenuService(menuRepo)

	// Orders push kitchen tickets through the websocket hub
	orderService := services.NewOrderService(orderRepo, tableRepo, menuRepo, hub, cfg)
	sessionService := services.NewSessionService(sessionRepo, tableRepo, orderRepo, cfg)
	billingService := services.NewBillingService(sessionRepo, orderRepo, userRepo, sessionService, orderService)
	reservationService := services.NewReservationService(reservationRepo, tableRepo)
	kotService := services.NewKOTService(orderRepo)
	deviceService := services.NewDeviceService(deviceRepo, tableRepo)
	printerService := services.NewPrinterService(printerRepo)
	reportService := services.NewReportService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	tableHandler := handlers.NewTableHandler(tableService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	billingHandler := handlers.NewBillingHandler(billingService)
	kotHandler := handlers.NewKOTHandler(kotService, hub, cfg)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	deviceHandler := handlers.NewDeviceHandler(deviceService, printerService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, authHandler, userHandler, tableHandler, menuHandler,
		orderHandler, sessionHandler, billingHandler, kotHandler,
		reservationHandler, deviceHandler, reportHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tableHandler *handlers.TableHandler,
	menuHandler *handlers.MenuHandler,
	orderHandler *handlers.OrderHandler,
	sessionHandler *handlers.SessionHandler,
	billingHandler *handlers.BillingHandler,
	kotHandler *handlers.KOTHandler,
	reservationHandler *handlers.ReservationHandler,
	deviceHandler *handlers.DeviceHandler,
	reportHandler *handlers.ReportHandler,
	cfg *config.Config,
) {
	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Staff management routes
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Table routes (all floor staff)
	tableRoutes := router.Group("/tables")
	tableRoutes.Use(middleware.AuthMiddleware(cfg))
	tableRoutes.Use(middleware.StaffOnly())
	setupTableRoutes(tableRoutes, tableHandler)

	// Menu routes
	menuRoutes := router.Group("/menu")
	menuRoutes.Use(middleware.AuthMiddleware(cfg))
	menuRoutes.Use(middleware.StaffOnly())
	setupMenuRoutes(menuRoutes, menuHandler)

	// Order routes
	orderRoutes := router.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware(cfg))
	orderRoutes.Use(middleware.StaffOnly())
	orderRoutes.Use(middleware.NoCacheHeaders())
	setupOrderRoutes(orderRoutes, orderHandler, billingHandler)

	// Session routes
	sessionRoutes := router.Group("/sessions")
	sessionRoutes.Use(middleware.AuthMiddleware(cfg))
	sessionRoutes.Use(middleware.StaffOnly())
	sessionRoutes.Use(middleware.NoCacheHeaders())
	setupSessionRoutes(sessionRoutes, sessionHandler, billingHandler)

	// Reservation routes
	reservationRoutes := router.Group("/reservations")
	reservationRoutes.Use(middleware.AuthMiddleware(cfg))
	reservationRoutes.Use(middleware.StaffOnly())
	setupReservationRoutes(reservationRoutes, reservationHandler)

	// KOT routes. The live socket authenticates its query token during the upgrade,
	// so it cannot sit behind the header-based auth middleware.
	kotRoutes := router.Group("/kot")
	setupKOTRoutes(kotRoutes, kotHandler, cfg)

	// Device routes (smart plugs, displays)
	deviceRoutes := router.Group("/devices")
	deviceRoutes.Use(middleware.AuthMiddleware(cfg))
	deviceRoutes.Use(middleware.StaffOnly())
	setupDeviceRoutes(deviceRoutes, deviceHandler)

	// Printer routes
	printerRoutes := router.Group("/printers")
	printerRoutes.Use(middleware.AuthMiddleware(cfg))
	printerRoutes.Use(middleware.StaffOnly())
	setupPrinterRoutes(printerRoutes, deviceHandler)

	// Dashboard (any authenticated user)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", reportHandler.Dashboard)

	// Report routes (Manager/Admin)
	reportRoutes := router.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Use(middleware.ManagerOrAdmin())
	setupReportRoutes(reportRoutes, reportHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against credential stuffing)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures staff management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Any authenticated user changes their own password
	router.Put("/me/password", handler.ChangePassword)

	// Manager/Admin can browse the roster
	managerRoutes := router.Group("")
	managerRoutes.Use(middleware.ManagerOrAdmin())
	managerRoutes.Get("/", handler.List)
	managerRoutes.Get("/:id", handler.GetByID)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Deactivate)
}

// setupTableRoutes configures table routes
func setupTableRoutes(router fiber.Router, handler *handlers.TableHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)

	// Plug switching talks to physical hardware
	router.Post("/:id/plug", middleware.StrictRateLimiter(), handler.SetPlug)

	// Manager/Admin manage the floor layout
	managerRoutes := router.Group("")
	managerRoutes.Use(middleware.ManagerOrAdmin())
	managerRoutes.Post("/", handler.Create)
	managerRoutes.Put("/:id", handler.Update)
	managerRoutes.Delete("/:id", handler.Delete)
}

// setupMenuRoutes configures menu routes
func setupMenuRoutes(router fiber.Router, handler *handlers.MenuHandler) {
	// Reads are cacheable; terminals poll the menu constantly
	router.Get("/", middleware.MenuCache(), handler.List)
	router.Get("/categories", middleware.MenuCache(), handler.Categories)
	router.Get("/:id", middleware.MenuCache(), handler.GetByID)

	// Any staff can 86 an item mid-service
	router.Patch("/:id/availability", handler.SetAvailability)

	// Manager/Admin manage the catalog
	managerRoutes := router.Group("")
	managerRoutes.Use(middleware.ManagerOrAdmin())
	managerRoutes.Post("/", handler.Create)
	managerRoutes.Put("/:id", handler.Update)
	managerRoutes.Delete("/:id", handler.Delete)
}

// setupOrderRoutes configures order routes
func setupOrderRoutes(router fiber.Router, handler *handlers.OrderHandler, billingHandler *handlers.BillingHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:ref", handler.GetByRef)
	router.Patch("/:ref/status", handler.UpdateStatus)
	router.Post("/:ref/cancel", handler.Cancel)
	router.Post("/:ref/print", handler.PrintKOT)
	router.Patch("/:ref/items/:itemId/status", handler.UpdateItemStatus)
	router.Post("/:ref/discount", billingHandler.DiscountOrder)
}

// setupSessionRoutes configures play session routes
func setupSessionRoutes(router fiber.Router, handler *handlers.SessionHandler, billingHandler *handlers.BillingHandler) {
	router.Post("/", handler.Start)
	router.Get("/", handler.List)
	router.Get("/:ref", handler.GetByRef)
	router.Post("/:ref/pause", handler.Pause)
	router.Post("/:ref/resume", handler.Resume)
	router.Post("/:ref/extend", handler.Extend)
	router.Post("/:ref/end", handler.End)
	router.Post("/:ref/cancel", handler.Cancel)

	// Billing lives on the session it settles
	router.Post("/:ref/discount", billingHandler.DiscountSession)
	router.Post("/:ref/pay", billingHandler.PaySession)
	router.Get("/:ref/receipt", billingHandler.GetReceipt)
}

// setupReservationRoutes configures reservation routes
func setupReservationRoutes(router fiber.Router, handler *handlers.ReservationHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:ref", handler.GetByRef)
	router.Patch("/:ref/status", handler.UpdateStatus)
}

// setupKOTRoutes configures kitchen ticket routes
func setupKOTRoutes(router fiber.Router, handler *handlers.KOTHandler, cfg *config.Config) {
	router.Get("/queue",
		middleware.AuthMiddleware(cfg),
		middleware.StaffOnly(),
		middleware.NoCacheHeaders(),
		handler.Queue)

	// WebSocket upgrade; token arrives as a query parameter
	router.Get("/live", handler.LiveUpgrade, handler.Live())
}

// setupDeviceRoutes configures smart device routes
func setupDeviceRoutes(router fiber.Router, handler *handlers.DeviceHandler) {
	router.Get("/", handler.ListDevices)
	router.Get("/:id", handler.GetDevice)

	// Power switching talks to physical hardware
	router.Post("/:id/control", middleware.StrictRateLimiter(), handler.ControlDevice)

	// Manager/Admin manage the device registry
	managerRoutes := router.Group("")
	managerRoutes.Use(middleware.ManagerOrAdmin())
	managerRoutes.Post("/", handler.RegisterDevice)
	managerRoutes.Put("/:id", handler.UpdateDevice)
	managerRoutes.Delete("/:id", handler.DeleteDevice)
}

// setupPrinterRoutes configures printer routes
func setupPrinterRoutes(router fiber.Router, handler *handlers.DeviceHandler) {
	router.Get("/", handler.ListPrinters)
	router.Get("/:id", handler.GetPrinter)

	// Manager/Admin manage printers
	managerRoutes := router.Group("")
	managerRoutes.Use(middleware.ManagerOrAdmin())
	managerRoutes.Post("/", handler.CreatePrinter)
	managerRoutes.Put("/:id", handler.UpdatePrinter)
	managerRoutes.Post("/:id/test", middleware.StrictRateLimiter(), handler.TestPrinter)
	managerRoutes.Delete("/:id", handler.DeletePrinter)
}

// setupReportRoutes configures reporting routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/revenue", handler.Revenue)
	router.Get("/revenue/export", handler.RevenueCSV)
	router.Get("/sales", handler.Sales)
	router.Get("/staff", handler.Staff)
}
