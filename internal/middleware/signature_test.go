package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "app-secret"

func signedApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhook", ValidateSignature(testSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidSignaturePasses(t *testing.T) {
	app := signedApp()
	body := `{"object":"whatsapp_business_account"}`

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign(testSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMissingSignatureRejected(t *testing.T) {
	app := signedApp()

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWrongSecretRejected(t *testing.T) {
	app := signedApp()
	body := `{"object":"whatsapp_business_account"}`

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("other-secret", body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTamperedBodyRejected(t *testing.T) {
	app := signedApp()
	body := `{"object":"whatsapp_business_account"}`

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body+" "))
	req.Header.Set("X-Hub-Signature-256", sign(testSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
