package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modaline/whatsapp-support-bot/internal/services"
	"github.com/modaline/whatsapp-support-bot/internal/whatsapp"
)

// WebhookHandler handles WhatsApp Cloud API webhook requests.
type WebhookHandler struct {
	verifyToken string
	router      *services.Router
	client      *whatsapp.Client // nil in tests without a Graph API double
	log         *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(verifyToken string, router *services.Router, client *whatsapp.Client, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		router:      router,
		client:      client,
		log:         log,
	}
}

// HandleVerify answers the subscription handshake. The challenge echoes back
// verbatim on a token match; anything else is a 403.
func (h *WebhookHandler) HandleVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		h.log.Info("✅ Webhook verified")
		return c.Status(fiber.StatusOK).SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// HandleWebhook ingests one webhook delivery. The platform retries anything
// that is not a 200, so this returns 200 on every handled path, including
// payloads with no message and internal failures.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		h.log.Warnf("Ignoring malformed webhook body: %v", err)
		return c.SendStatus(fiber.StatusOK)
	}

	msg, ok := whatsapp.ExtractMessage(&payload)
	if !ok {
		// Status update or partial payload; acknowledge and move on.
		return c.SendStatus(fiber.StatusOK)
	}

	input := whatsapp.NormalizeInput(msg)
	h.log.Infof("📩 Message from %s: %q", msg.From, input)

	h.router.HandleMessage(c.UserContext(), msg.From, input)

	if h.client != nil && msg.ID != "" {
		h.client.MarkRead(c.UserContext(), msg.ID)
	}

	return c.SendStatus(fiber.StatusOK)
}
