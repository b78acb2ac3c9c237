package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/config"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/database"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/handlers"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/logger"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/middleware"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/push"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/realtime"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/secure"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/store"
)

func main() {
	// 1. Config (loads .env first)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Setup(cfg)
	middleware.SetJWTSecret(cfg.JWTSecret)

	// 2. Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// 3. Core wiring: one codec for every obfuscation call site
	codec, err := secure.NewCodec(cfg.SecretKey)
	if err != nil {
		log.Fatalf("secure codec: %v", err)
	}
	txStore := store.New(db, codec)

	// 4. Change feed: DB trigger -> LISTEN/NOTIFY -> websocket refresh signal
	listener, err := realtime.NewListener(cfg.DSN())
	if err != nil {
		log.Fatalf("realtime listener: %v", err)
	}
	defer listener.Close()

	hub := realtime.NewHub()
	listener.Subscribe(func() {
		hub.Broadcast(realtime.RefreshSignal)
	})

	// 5. HTTP app
	app := fiber.New()
	app.Use(fiberlogger.New())

	authHandler := handlers.NewAuthHandler(db)
	txHandler := handlers.NewTransactionHandler(db, txStore)
	reportHandler := handlers.NewReportHandler(txStore, cfg.ReportWindowDays)

	api := app.Group("/api/v1")

	// === PUBLIC ROUTES ===
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Running", "message": "API Ready"})
	})
	api.Post("/login", authHandler.Login)
	api.Get("/menu", handlers.GetMenu(db))

	// Refresh-signal channel for the cashier and admin screens
	app.Use("/ws", realtime.Upgrade)
	app.Get("/ws/transactions", hub.Handler())

	// === LEGACY PUSH PATH (not consumed by the admin views) ===
	legacyHub := realtime.NewHub()
	app.Post("/api/transactions", push.CreateTransaction(db, legacyHub))
	app.Get("/ws", legacyHub.Handler())

	// === PROTECTED ROUTES (JWT) ===
	api.Use(middleware.JWTProtected())
	api.Get("/me", authHandler.GetProfile)

	// POS Routes (kasir and admin)
	pos := api.Group("/pos")
	pos.Use(middleware.RoleProtected(models.RoleKasir, models.RoleAdmin))
	pos.Post("/transactions", txHandler.CreateTransaction)
	pos.Get("/transactions", txHandler.GetTransactions)
	pos.Delete("/transactions/:id", txHandler.DeleteTransaction)

	// Admin Routes
	admin := api.Group("/admin")
	admin.Use(middleware.RoleProtected(models.RoleAdmin))
	admin.Post("/register", authHandler.Register)
	admin.Get("/users", handlers.GetUsers(db))
	admin.Put("/users/:id", handlers.UpdateUser(db))
	admin.Delete("/users/:id", handlers.DeleteUser(db))

	admin.Post("/menu", handlers.CreateMenuItem(db))
	admin.Put("/menu/:id", handlers.UpdateMenuItem(db))
	admin.Delete("/menu/:id", handlers.DeleteMenuItem(db))

	admin.Get("/dashboard", reportHandler.Dashboard)
	admin.Get("/customers", reportHandler.Customers)
	admin.Get("/reports/daily", reportHandler.Daily)
	admin.Get("/reports/payment-methods", reportHandler.PaymentMethods)
	admin.Get("/reports/export", reportHandler.Export)

	log.Infof("server listening on port :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
