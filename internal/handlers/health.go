package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modaline/whatsapp-support-bot/internal/storage"
)

// HealthHandler serves the status endpoints.
type HealthHandler struct {
	store       storage.Store
	storageType string
	environment string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store storage.Store, storageType, environment string) *HealthHandler {
	return &HealthHandler{
		store:       store,
		storageType: storageType,
		environment: environment,
	}
}

// HandleRoot reports service metadata and live session counts.
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":     "ModaLine WhatsApp Support Bot",
		"version":     "1.0.0",
		"status":      "healthy",
		"environment": h.environment,
		"storage":     h.storageType,
		"sessions":    h.store.ActiveSessionCount(),
	})
}

// HandleHealth is the monitoring probe.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
