package whatsapp

// Outbound message payloads for POST /{phoneNumberId}/messages.

// Button is one reply button. The API allows at most three per message.
type Button struct {
	ID    string
	Title string
}

type sendMessage struct {
	MessagingProduct string            `json:"messaging_product"`
	RecipientType    string            `json:"recipient_type"`
	To               string            `json:"to"`
	Type             string            `json:"type"`
	Text             *textMessage     `json:"text,omitempty"`
	Image            *imageMessage    `json:"image,omitempty"`
	Interactive      *interactiveBody `json:"interactive,omitempty"`
}

type textMessage struct {
	Body string `json:"body"`
}

type imageMessage struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type interactiveBody struct {
	Type   string             `json:"type"` // "button" or "cta_url"
	Header *interactiveHeader `json:"header,omitempty"`
	Body   interactiveText    `json:"body"`
	Action interactiveAction  `json:"action"`
}

type interactiveHeader struct {
	Type  string        `json:"type"` // "image"
	Image *imageMessage `json:"image,omitempty"`
}

type interactiveText struct {
	Text string `json:"text"`
}

type interactiveAction struct {
	Buttons    []replyButton  `json:"buttons,omitempty"`
	Name       string         `json:"name,omitempty"` // "cta_url"
	Parameters *urlParameters `json:"parameters,omitempty"`
}

type replyButton struct {
	Type  string          `json:"type"` // "reply"
	Reply replyButtonBody `json:"reply"`
}

type replyButtonBody struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type urlParameters struct {
	DisplayText string `json:"display_text"`
	URL         string `json:"url"`
}

type markReadRequest struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

type apiErrorResponse struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FbtraceID string `json:"fbtrace_id"`
	} `json:"error"`
}
