package models

import "strings"

// OrderStatus is the canonical status vocabulary. Upstream API revisions
// disagree on casing and language; ParseOrderStatus folds them all in here.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusRefunded   OrderStatus = "REFUNDED"
	StatusFailed     OrderStatus = "FAILED"
	StatusUnknown    OrderStatus = "UNKNOWN"
)

// ParseOrderStatus maps an upstream status string to the canonical enum.
// Seen in the wild: uppercase English, lowercase English, and Turkish labels.
func ParseOrderStatus(raw string) OrderStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING", "CREATED", "BEKLEMEDE":
		return StatusPending
	case "PROCESSING", "CONFIRMED", "HAZIRLANIYOR", "HAZIRLANIYOR.":
		return StatusProcessing
	case "SHIPPED", "KARGOYA VERILDI", "KARGOYA VERİLDİ", "KARGODA":
		return StatusShipped
	case "DELIVERED", "TESLIM EDILDI", "TESLİM EDİLDİ":
		return StatusDelivered
	case "CANCELLED", "CANCELED", "IPTAL", "İPTAL", "IPTAL EDILDI":
		return StatusCancelled
	case "RETURNED", "REFUNDED", "IADE", "İADE", "IADE EDILDI":
		return StatusRefunded
	case "FAILED", "BASARISIZ", "BAŞARISIZ":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// statusLabels is the single translation table to user-facing Turkish text.
var statusLabels = map[OrderStatus]string{
	StatusPending:    "Beklemede",
	StatusProcessing: "Hazırlanıyor",
	StatusShipped:    "Kargoya verildi",
	StatusDelivered:  "Teslim edildi",
	StatusCancelled:  "İptal edildi",
	StatusRefunded:   "İade edildi",
	StatusFailed:     "Başarısız",
}

// Label returns the Turkish display text for a status. Unknown statuses
// display verbatim rather than guessing.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// OrderLine is one line item on an order.
type OrderLine struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Order is the read-only view of an upstream order.
type Order struct {
	OrderNumber     string      `json:"orderNumber"`
	Status          OrderStatus `json:"status"`
	TotalFinalPrice float64     `json:"totalFinalPrice"`
	CurrencyCode    string      `json:"currencyCode"`
	CreatedAt       string      `json:"createdAt"`
	CustomerPhone   string      `json:"customerPhone"`
	TrackingURL     string      `json:"trackingUrl,omitempty"`
	Items           []OrderLine `json:"items"`
}
