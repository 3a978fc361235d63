package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/modaline/whatsapp-support-bot/database"
	"github.com/modaline/whatsapp-support-bot/internal/config"
	"github.com/modaline/whatsapp-support-bot/internal/handlers"
	"github.com/modaline/whatsapp-support-bot/internal/ikas"
	"github.com/modaline/whatsapp-support-bot/internal/jobs"
	applog "github.com/modaline/whatsapp-support-bot/internal/logger"
	"github.com/modaline/whatsapp-support-bot/internal/models"
	"github.com/modaline/whatsapp-support-bot/internal/routes"
	"github.com/modaline/whatsapp-support-bot/internal/services"
	"github.com/modaline/whatsapp-support-bot/internal/storage"
	"github.com/modaline/whatsapp-support-bot/internal/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := applog.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Storage
	var store storage.Store
	storageType := "PostgreSQL"
	if cfg.UseMemoryStore {
		log.Warn("⚠️  Using in-memory storage (single instance only)")
		store = storage.NewMemoryStore()
		storageType = "In-Memory"
	} else {
		log.Info("📦 Connecting to PostgreSQL database...")
		if err := database.Connect(); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.DB.AutoMigrate(&storage.SessionRecord{}, &models.SupportTicket{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		store = storage.NewDatabaseStore(database.DB)
	}

	// Outbound clients
	waClient := whatsapp.NewClient(whatsapp.Config{
		AccessToken:   cfg.AccessToken,
		PhoneNumberID: cfg.PhoneNumberID,
		BaseURL:       cfg.GraphAPIURL,
	}, log)

	ikasClient := ikas.NewClient(ikas.Config{
		ClientID:     cfg.IkasClientID,
		ClientSecret: cfg.IkasClientSecret,
		TokenURL:     cfg.IkasTokenURL,
		GraphQLURL:   cfg.IkasAPIURL,
	}, log)

	var agent services.AgentNotifier
	agentService, err := services.NewAgentService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.SupportAgentPhone, log)
	if err != nil {
		log.Warnf("⚠️  Agent escalation disabled: %v", err)
	} else {
		agent = agentService
	}

	router := services.NewRouter(store, waClient, ikasClient, agent, log, cfg.SessionTTL, cfg.ReturnsEnabled)

	webhookHandler := handlers.NewWebhookHandler(cfg.VerifyToken, router, waClient, log)
	healthHandler := handlers.NewHealthHandler(store, storageType, cfg.Environment)

	// Background jobs
	cleanupJob := jobs.NewSessionCleanupJob(store, log, 5*time.Minute)
	cleanupJob.Start()

	app := fiber.New(fiber.Config{
		AppName: "ModaLine WhatsApp Support Bot v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New())

	routes.SetupRoutes(app, cfg, webhookHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	log.Infof("🚀 WhatsApp support bot starting on port %s", cfg.Port)
	log.Infof("📊 Storage: %s", storageType)
	log.Infof("🌍 Environment: %s", cfg.Environment)
	log.Infof("↩️  Returns enabled: %v", cfg.ReturnsEnabled)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
