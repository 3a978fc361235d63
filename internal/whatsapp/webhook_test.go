package whatsapp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMessageDepthGuards(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"no entry", `{"object":"whatsapp_business_account","entry":[]}`},
		{"no changes", `{"entry":[{"id":"1","changes":[]}]}`},
		{"no messages", `{"entry":[{"changes":[{"value":{"messaging_product":"whatsapp"}}]}]}`},
		{"status only", `{"entry":[{"changes":[{"value":{"statuses":[{"id":"wamid.1","status":"delivered"}]}}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload WebhookPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &payload))

			_, ok := ExtractMessage(&payload)
			assert.False(t, ok)
		})
	}

	_, ok := ExtractMessage(nil)
	assert.False(t, ok)
}

func TestExtractMessageReturnsFirstMessage(t *testing.T) {
	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"metadata": {"display_phone_number": "908501234567", "phone_number_id": "111"},
					"contacts": [{"profile": {"name": "Ayşe"}, "wa_id": "905551234567"}],
					"messages": [
						{"from": "905551234567", "id": "wamid.first", "type": "text", "text": {"body": "Merhaba"}},
						{"from": "905551234567", "id": "wamid.second", "type": "text", "text": {"body": "ikinci"}}
					]
				}
			}]
		}]
	}`

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	msg, ok := ExtractMessage(&payload)
	require.True(t, ok)
	assert.Equal(t, "wamid.first", msg.ID)
	assert.Equal(t, "905551234567", msg.From)
}

func TestNormalizeInputPriority(t *testing.T) {
	tests := []struct {
		name string
		msg  IncomingMessage
		want string
	}{
		{
			name: "button reply id wins over title",
			msg: IncomingMessage{
				Interactive: &InteractiveRecv{ButtonReply: &ButtonReply{ID: "my_orders", Title: "Siparişlerim"}},
				Text:        &TextContent{Body: "ignored"},
			},
			want: "my_orders",
		},
		{
			name: "button reply falls back to title",
			msg: IncomingMessage{
				Interactive: &InteractiveRecv{ButtonReply: &ButtonReply{Title: "Siparişlerim"}},
			},
			want: "siparişlerim",
		},
		{
			name: "list reply id",
			msg: IncomingMessage{
				Interactive: &InteractiveRecv{ListReply: &ButtonReply{ID: "select_1001", Title: "Sipariş Detayı"}},
			},
			want: "select_1001",
		},
		{
			name: "template button payload",
			msg: IncomingMessage{
				Button: &ButtonRecv{Payload: "return_start", Text: "İade Talebi"},
			},
			want: "return_start",
		},
		{
			name: "free text lowercased and trimmed",
			msg: IncomingMessage{
				Text: &TextContent{Body: "  MERHABA  "},
			},
			want: "merhaba",
		},
		{
			name: "nothing set",
			msg:  IncomingMessage{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInput(tt.msg))
		})
	}
}
