package services

import "strings"

// IntentKind tags the normalized meaning of an inbound message.
type IntentKind int

const (
	// IntentText is any input that matched no vocabulary entry.
	IntentText IntentKind = iota
	IntentGreeting
	IntentMainMenu
	IntentMyOrders
	IntentOrderLookup
	IntentOrderSelect
	IntentTracking
	IntentStatus
	IntentReturnStart
	IntentReturnConfirm
	IntentReturnCancel
	IntentHumanAgent
)

// Intent is the tagged variant produced by the single normalization step.
// Arg carries the order number for IntentOrderSelect.
type Intent struct {
	Kind IntentKind
	Arg  string
	Raw  string
}

// Button IDs used in outbound menus. Incoming button replies echo these back.
const (
	btnMyOrders      = "my_orders"
	btnOrderLookup   = "order_lookup"
	btnHumanAgent    = "human_agent"
	btnTracking      = "tracking"
	btnStatus        = "status"
	btnReturnStart   = "return_start"
	btnReturnConfirm = "return_confirm"
	btnReturnCancel  = "return_cancel"
	btnMainMenu      = "main_menu"

	btnSelectPrefix = "select_"
)

// ParseIntent maps a lowercased, trimmed input (button id, button title or
// free text) to an intent. Earlier revisions matched ids in one place and
// titles in another; folding both into one table keeps the router exhaustive.
func ParseIntent(input string) Intent {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, btnSelectPrefix) {
		return Intent{Kind: IntentOrderSelect, Arg: strings.TrimPrefix(input, btnSelectPrefix), Raw: input}
	}

	switch input {
	case "merhaba", "selam", "hi", "hello", "start":
		return Intent{Kind: IntentGreeting, Raw: input}
	case btnMainMenu, "ana menü", "ana menu", "menü", "menu":
		return Intent{Kind: IntentMainMenu, Raw: input}
	case btnMyOrders, "siparişlerim", "siparislerim", "my orders":
		return Intent{Kind: IntentMyOrders, Raw: input}
	case btnOrderLookup, "sipariş sorgula", "siparis sorgula":
		return Intent{Kind: IntentOrderLookup, Raw: input}
	case btnTracking, "kargo takip", "kargom nerede":
		return Intent{Kind: IntentTracking, Raw: input}
	case btnStatus, "sipariş durumu", "siparis durumu":
		return Intent{Kind: IntentStatus, Raw: input}
	case btnReturnStart, "iade", "iade talebi":
		return Intent{Kind: IntentReturnStart, Raw: input}
	case btnReturnConfirm, "evet, iade et":
		return Intent{Kind: IntentReturnConfirm, Raw: input}
	case btnReturnCancel, "vazgeç", "vazgec":
		return Intent{Kind: IntentReturnCancel, Raw: input}
	case btnHumanAgent, "temsilciye bağlan", "temsilciye baglan", "müşteri temsilcisi", "musteri temsilcisi":
		return Intent{Kind: IntentHumanAgent, Raw: input}
	default:
		return Intent{Kind: IntentText, Raw: input}
	}
}
