package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modaline/whatsapp-support-bot/internal/config"
	"github.com/modaline/whatsapp-support-bot/internal/handlers"
	"github.com/modaline/whatsapp-support-bot/internal/middleware"
)

// SetupRoutes registers all endpoints on the fiber app.
func SetupRoutes(app *fiber.App, cfg config.Config, webhook *handlers.WebhookHandler, health *handlers.HealthHandler) {
	app.Get("/", health.HandleRoot)
	app.Get("/health", health.HandleHealth)

	app.Get("/webhook", webhook.HandleVerify)

	// Signature validation is skipped in development (ngrok, curl) and when
	// no app secret is configured.
	if cfg.AppSecret != "" && !cfg.IsDevelopment() {
		app.Post("/webhook", middleware.ValidateSignature(cfg.AppSecret), webhook.HandleWebhook)
	} else {
		app.Post("/webhook", webhook.HandleWebhook)
	}
}
