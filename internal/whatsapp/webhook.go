package whatsapp

import "strings"

// Webhook delivery types, per the Meta Cloud API schema.

type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         Metadata          `json:"metadata"`
	Contacts         []Contact         `json:"contacts,omitempty"`
	Messages         []IncomingMessage `json:"messages,omitempty"`
	Statuses         []StatusUpdate    `json:"statuses,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

type ContactProfile struct {
	Name string `json:"name"`
}

type IncomingMessage struct {
	From        string           `json:"from"`
	ID          string           `json:"id"`
	Timestamp   string           `json:"timestamp"`
	Type        string           `json:"type"`
	Text        *TextContent     `json:"text,omitempty"`
	Interactive *InteractiveRecv `json:"interactive,omitempty"`
	Button      *ButtonRecv      `json:"button,omitempty"`
}

type TextContent struct {
	Body string `json:"body"`
}

type InteractiveRecv struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
	ListReply   *ButtonReply `json:"list_reply,omitempty"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ButtonRecv struct {
	Payload string `json:"payload"`
	Text    string `json:"text"`
}

type StatusUpdate struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// ExtractMessage pulls the first message out of a webhook delivery. Any
// missing level (entry, changes, value.messages) yields ok=false; status-only
// deliveries are ignored the same way.
func ExtractMessage(payload *WebhookPayload) (msg IncomingMessage, ok bool) {
	if payload == nil || len(payload.Entry) == 0 {
		return IncomingMessage{}, false
	}
	entry := payload.Entry[0]
	if len(entry.Changes) == 0 {
		return IncomingMessage{}, false
	}
	value := entry.Changes[0].Value
	if len(value.Messages) == 0 {
		return IncomingMessage{}, false
	}
	return value.Messages[0], true
}

// NormalizeInput derives the routing input from a message: button-reply id
// first, then button-reply title, then free text. Lowercased and trimmed.
func NormalizeInput(msg IncomingMessage) string {
	var raw string
	switch {
	case msg.Interactive != nil && msg.Interactive.ButtonReply != nil:
		raw = msg.Interactive.ButtonReply.ID
		if raw == "" {
			raw = msg.Interactive.ButtonReply.Title
		}
	case msg.Interactive != nil && msg.Interactive.ListReply != nil:
		raw = msg.Interactive.ListReply.ID
		if raw == "" {
			raw = msg.Interactive.ListReply.Title
		}
	case msg.Button != nil:
		raw = msg.Button.Payload
		if raw == "" {
			raw = msg.Button.Text
		}
	case msg.Text != nil:
		raw = msg.Text.Body
	}
	return strings.ToLower(strings.TrimSpace(raw))
}
