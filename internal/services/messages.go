package services

import (
	"fmt"
	"strings"

	"github.com/modaline/whatsapp-support-bot/internal/models"
	"github.com/modaline/whatsapp-support-bot/internal/whatsapp"
)

// User-facing copy. The storefront serves Turkish customers.
const (
	msgWelcome = "Merhaba! 👋 ModaLine müşteri hizmetlerine hoş geldiniz.\nSize nasıl yardımcı olabilirim?"

	msgPickOption = "Lütfen menüden bir seçenek seçin. 🙏"

	msgApology = "Üzgünüz, şu anda sistemlerimize ulaşılamıyor. Lütfen daha sonra tekrar deneyin."

	msgNoOrdersForPhone = "Telefon numaranıza kayıtlı bir sipariş bulamadık. 🔎\nLütfen sipariş numaranızı yazın."

	msgAskOrderNumber = "Lütfen sipariş numaranızı yazın."

	msgOrderNotFound = "Bu numaraya ait bir sipariş bulamadık. Lütfen sipariş numaranızı kontrol edip tekrar deneyin."

	msgPickOrderFirst = "Önce bir sipariş seçmelisiniz. \"Siparişlerim\" menüsünü kullanabilirsiniz."

	msgNotShippedYet = "Siparişiniz henüz kargoya verilmedi. 📦 Kargoya verildiğinde takip bağlantısı burada olacak."

	msgReturnCreated = "İade talebiniz oluşturuldu. ✅ İade süreciyle ilgili bilgilendirme mesajı alacaksınız."

	msgCancelled = "İşleminiz iptal edildi."
)

func mainMenuButtons() []whatsapp.Button {
	return []whatsapp.Button{
		{ID: btnMyOrders, Title: "Siparişlerim"},
		{ID: btnOrderLookup, Title: "Sipariş Sorgula"},
		{ID: btnHumanAgent, Title: "Temsilciye Bağlan"},
	}
}

func orderSubmenuButtons() []whatsapp.Button {
	return []whatsapp.Button{
		{ID: btnTracking, Title: "Kargo Takip"},
		{ID: btnStatus, Title: "Sipariş Durumu"},
		{ID: btnReturnStart, Title: "İade Talebi"},
	}
}

func returnConfirmButtons() []whatsapp.Button {
	return []whatsapp.Button{
		{ID: btnReturnConfirm, Title: "Evet, iade et"},
		{ID: btnReturnCancel, Title: "Vazgeç"},
		{ID: btnHumanAgent, Title: "Temsilciye Bağlan"},
	}
}

func orderSelectButton(orderNumber string) []whatsapp.Button {
	return []whatsapp.Button{
		{ID: btnSelectPrefix + orderNumber, Title: "Sipariş Detayı"},
	}
}

// orderCardText is the short per-order summary shown in the order list.
func orderCardText(order models.Order) string {
	return fmt.Sprintf("🛍️ Sipariş #%s\nDurum: %s\nTutar: %.2f %s\nTarih: %s",
		order.OrderNumber, order.Status.Label(), order.TotalFinalPrice, order.CurrencyCode, order.CreatedAt)
}

// orderDetailText lists the line items under the summary.
func orderDetailText(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛍️ Sipariş #%s\nDurum: %s\nTutar: %.2f %s\nTarih: %s\n",
		order.OrderNumber, order.Status.Label(), order.TotalFinalPrice, order.CurrencyCode, order.CreatedAt)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "\n• %s x%d — %.2f %s", item.ProductName, item.Quantity, item.UnitPrice, order.CurrencyCode)
	}
	b.WriteString("\n\nNe yapmak istersiniz?")
	return b.String()
}

func statusText(order models.Order) string {
	return fmt.Sprintf("Sipariş #%s durumu: %s", order.OrderNumber, order.Status.Label())
}

func returnConfirmText(orderNumber string) string {
	return fmt.Sprintf("#%s numaralı siparişiniz için iade talebi oluşturulacak. Onaylıyor musunuz?", orderNumber)
}

func returnForwardedText(ticketID string) string {
	return fmt.Sprintf("İade talebiniz müşteri temsilcimize iletildi. 📨 Talep numaranız: %s", ticketID)
}

func agentNotifiedText(ticketID string) string {
	return fmt.Sprintf("Sizi müşteri temsilcimize bağlıyoruz. 💬 En kısa sürede size dönüş yapılacak.\nTalep numaranız: %s", ticketID)
}
