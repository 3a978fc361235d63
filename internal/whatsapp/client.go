package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const maxReplyButtons = 3

// Client sends messages through the WhatsApp Cloud Graph API.
type Client struct {
	accessToken   string
	phoneNumberID string
	baseURL       string
	httpClient    *http.Client
	log           *logrus.Logger
}

// Config holds the Graph API credentials and endpoint.
type Config struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string // e.g. https://graph.facebook.com/v18.0
}

// NewClient creates a new Cloud API client.
func NewClient(cfg Config, log *logrus.Logger) *Client {
	return &Client{
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		baseURL:       cfg.BaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		log:           log,
	}
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, sendMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             &textMessage{Body: body},
	})
}

// SendButtons sends an interactive message with up to three reply buttons.
func (c *Client) SendButtons(ctx context.Context, to, body string, buttons []Button) error {
	return c.sendButtons(ctx, to, body, "", buttons)
}

// SendButtonsWithImage sends reply buttons under an image header.
func (c *Client) SendButtonsWithImage(ctx context.Context, to, body, imageURL string, buttons []Button) error {
	return c.sendButtons(ctx, to, body, imageURL, buttons)
}

func (c *Client) sendButtons(ctx context.Context, to, body, imageURL string, buttons []Button) error {
	if len(buttons) > maxReplyButtons {
		buttons = buttons[:maxReplyButtons]
	}

	replies := make([]replyButton, 0, len(buttons))
	for _, b := range buttons {
		replies = append(replies, replyButton{
			Type:  "reply",
			Reply: replyButtonBody{ID: b.ID, Title: b.Title},
		})
	}

	interactive := &interactiveBody{
		Type:   "button",
		Body:   interactiveText{Text: body},
		Action: interactiveAction{Buttons: replies},
	}
	if imageURL != "" {
		interactive.Header = &interactiveHeader{
			Type:  "image",
			Image: &imageMessage{Link: imageURL},
		}
	}

	return c.post(ctx, sendMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "interactive",
		Interactive:      interactive,
	})
}

// SendURLButton sends an interactive message with a single URL button,
// used for external tracking links.
func (c *Client) SendURLButton(ctx context.Context, to, body, label, url string) error {
	return c.post(ctx, sendMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "interactive",
		Interactive: &interactiveBody{
			Type: "cta_url",
			Body: interactiveText{Text: body},
			Action: interactiveAction{
				Name:       "cta_url",
				Parameters: &urlParameters{DisplayText: label, URL: url},
			},
		},
	})
}

// SendImage sends an image by link.
func (c *Client) SendImage(ctx context.Context, to, link, caption string) error {
	return c.post(ctx, sendMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "image",
		Image:            &imageMessage{Link: link, Caption: caption},
	})
}

// MarkRead marks an inbound message as read. Best effort; failures are
// logged and ignored.
func (c *Client) MarkRead(ctx context.Context, messageID string) {
	payload := markReadRequest{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}
	if err := c.doPost(ctx, payload); err != nil {
		c.log.Warnf("Failed to mark message %s as read: %v", messageID, err)
	}
}

func (c *Client) post(ctx context.Context, payload sendMessage) error {
	if err := c.doPost(ctx, payload); err != nil {
		// The webhook was already acknowledged; the send failure has no
		// user-facing effect beyond the message never arriving.
		c.log.Errorf("Failed to send %s message to %s: %v", payload.Type, payload.To, err)
		return err
	}
	return nil
}

func (c *Client) doPost(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Code != 0 {
			return fmt.Errorf("graph api error %d (%s): %s", apiErr.Error.Code, apiErr.Error.Type, apiErr.Error.Message)
		}
		return fmt.Errorf("graph api status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
