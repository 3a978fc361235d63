package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		input string
		want  IntentKind
	}{
		{"merhaba", IntentGreeting},
		{"hello", IntentGreeting},
		{"my_orders", IntentMyOrders},
		{"siparişlerim", IntentMyOrders},
		{"order_lookup", IntentOrderLookup},
		{"menu", IntentMainMenu},
		{"ana menü", IntentMainMenu},
		{"tracking", IntentTracking},
		{"kargo takip", IntentTracking},
		{"status", IntentStatus},
		{"sipariş durumu", IntentStatus},
		{"return_start", IntentReturnStart},
		{"iade", IntentReturnStart},
		{"return_confirm", IntentReturnConfirm},
		{"return_cancel", IntentReturnCancel},
		{"vazgeç", IntentReturnCancel},
		{"human_agent", IntentHumanAgent},
		{"müşteri temsilcisi", IntentHumanAgent},
		{"random free text", IntentText},
		{"", IntentText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.input).Kind)
		})
	}
}

func TestParseIntentOrderSelectCarriesArg(t *testing.T) {
	intent := ParseIntent("select_1001")
	assert.Equal(t, IntentOrderSelect, intent.Kind)
	assert.Equal(t, "1001", intent.Arg)
}

func TestParseIntentIDBeatsTitleAmbiguity(t *testing.T) {
	// Button ids and their titles both land on the same intent.
	assert.Equal(t, ParseIntent("my_orders").Kind, ParseIntent("siparişlerim").Kind)
	assert.Equal(t, ParseIntent("human_agent").Kind, ParseIntent("temsilciye bağlan").Kind)
}
