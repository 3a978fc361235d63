package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modaline/whatsapp-support-bot/internal/ikas"
	"github.com/modaline/whatsapp-support-bot/internal/models"
	"github.com/modaline/whatsapp-support-bot/internal/storage"
	"github.com/modaline/whatsapp-support-bot/internal/utils"
	"github.com/modaline/whatsapp-support-bot/internal/whatsapp"
)

// Sender sends outbound WhatsApp messages. Satisfied by *whatsapp.Client.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
	SendButtons(ctx context.Context, to, body string, buttons []whatsapp.Button) error
	SendButtonsWithImage(ctx context.Context, to, body, imageURL string, buttons []whatsapp.Button) error
	SendURLButton(ctx context.Context, to, body, label, url string) error
}

// OrderAPI queries the upstream order system. Satisfied by *ikas.Client.
type OrderAPI interface {
	ListOrdersByPhone(ctx context.Context, phone string) ([]models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	CreateReturnRequest(ctx context.Context, orderNumber string) error
}

// AgentNotifier pings a human support agent about an escalation.
type AgentNotifier interface {
	NotifyAgent(ticket *models.SupportTicket) error
}

// Router is the conversation state machine. One inbound message produces at
// most one side-effecting action and one session mutation.
type Router struct {
	store          storage.Store
	sender         Sender
	orders         OrderAPI
	agent          AgentNotifier // nil when escalation is not configured
	log            *logrus.Logger
	sessionTTL     time.Duration
	returnsEnabled bool
}

// NewRouter creates the session router.
func NewRouter(store storage.Store, sender Sender, orders OrderAPI, agent AgentNotifier,
	log *logrus.Logger, sessionTTL time.Duration, returnsEnabled bool) *Router {
	return &Router{
		store:          store,
		sender:         sender,
		orders:         orders,
		agent:          agent,
		log:            log,
		sessionTTL:     sessionTTL,
		returnsEnabled: returnsEnabled,
	}
}

// HandleMessage processes one normalized inbound message. Errors are fully
// absorbed here: the user gets an apology, the webhook still returns 200.
func (r *Router) HandleMessage(ctx context.Context, from, input string) {
	session, err := r.store.GetSession(from)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			r.log.Errorf("Loading session for %s: %v", from, err)
		}
		session = models.NewSession(from, r.sessionTTL)
	}

	switch {
	case !session.MenuShown:
		// First contact: the menu goes out regardless of what was said.
		r.sendMainMenu(ctx, session, msgWelcome)
	case session.AwaitingOrderNo:
		r.handleOrderNumberInput(ctx, session, strings.TrimSpace(input))
	default:
		r.dispatch(ctx, session, ParseIntent(input))
	}

	session.Touch(r.sessionTTL)
	if err := r.store.SaveSession(session); err != nil {
		r.log.Errorf("Saving session for %s: %v", from, err)
	}
}

func (r *Router) dispatch(ctx context.Context, session *models.Session, intent Intent) {
	switch intent.Kind {
	case IntentGreeting, IntentMainMenu:
		r.sendMainMenu(ctx, session, msgWelcome)

	case IntentMyOrders:
		r.handleMyOrders(ctx, session)

	case IntentOrderLookup:
		r.sendText(ctx, session, msgAskOrderNumber)
		session.AwaitingOrderNo = true
		session.State = models.StateAwaitingOrderNumber

	case IntentOrderSelect:
		r.handleOrderSelect(ctx, session, intent.Arg)

	case IntentTracking:
		r.handleTracking(ctx, session)

	case IntentStatus:
		r.handleStatus(ctx, session)

	case IntentReturnStart:
		r.handleReturnStart(ctx, session)

	case IntentReturnConfirm:
		r.handleReturnConfirm(ctx, session)

	case IntentReturnCancel:
		session.ResetToMenu()
		r.sendText(ctx, session, msgCancelled)
		r.sendMenuButtons(ctx, session)

	case IntentHumanAgent:
		r.handleHumanAgent(ctx, session, models.TicketTopicAgent)

	default:
		// Unmatched input never changes state.
		r.sendText(ctx, session, msgPickOption)
	}
}

func (r *Router) sendMainMenu(ctx context.Context, session *models.Session, body string) {
	if err := r.sender.SendButtons(ctx, session.PhoneNumber, body, mainMenuButtons()); err != nil {
		r.log.Errorf("Sending main menu to %s: %v", session.PhoneNumber, err)
	}
	session.ResetToMenu()
}

func (r *Router) sendMenuButtons(ctx context.Context, session *models.Session) {
	if err := r.sender.SendButtons(ctx, session.PhoneNumber, msgPickOption, mainMenuButtons()); err != nil {
		r.log.Errorf("Sending menu to %s: %v", session.PhoneNumber, err)
	}
}

func (r *Router) sendText(ctx context.Context, session *models.Session, body string) {
	if err := r.sender.SendText(ctx, session.PhoneNumber, body); err != nil {
		r.log.Errorf("Sending text to %s: %v", session.PhoneNumber, err)
	}
}

// handleMyOrders lists the sender's orders by canonical phone match. Zero
// results switch the conversation to the order-number prompt.
func (r *Router) handleMyOrders(ctx context.Context, session *models.Session) {
	phone := utils.NormalizePhone(session.PhoneNumber)
	orders, err := r.orders.ListOrdersByPhone(ctx, phone)
	if err != nil {
		r.log.Errorf("Listing orders for %s: %v", phone, err)
		r.sendText(ctx, session, msgApology)
		return
	}

	if len(orders) == 0 {
		r.sendText(ctx, session, msgNoOrdersForPhone)
		session.AwaitingOrderNo = true
		session.CurrentOrder = ""
		session.State = models.StateAwaitingOrderNumber
		return
	}

	// One card per order, sequential, so delivery order is deterministic.
	for _, order := range orders {
		r.sendOrderCard(ctx, session, order)
		session.RecordShownOrder(order.OrderNumber)
	}
	session.State = models.StateMenuShown
}

func (r *Router) sendOrderCard(ctx context.Context, session *models.Session, order models.Order) {
	body := orderCardText(order)
	buttons := orderSelectButton(order.OrderNumber)

	var err error
	if image := firstItemImage(order); image != "" {
		err = r.sender.SendButtonsWithImage(ctx, session.PhoneNumber, body, image, buttons)
	} else {
		err = r.sender.SendButtons(ctx, session.PhoneNumber, body, buttons)
	}
	if err != nil {
		r.log.Errorf("Sending order card %s to %s: %v", order.OrderNumber, session.PhoneNumber, err)
	}
}

func firstItemImage(order models.Order) string {
	for _, item := range order.Items {
		if item.ImageURL != "" {
			return item.ImageURL
		}
	}
	return ""
}

// handleOrderNumberInput treats the input as a literal order number, even if
// it happens to equal a menu keyword. The awaiting flag clears on every path,
// including upstream failure.
func (r *Router) handleOrderNumberInput(ctx context.Context, session *models.Session, orderNumber string) {
	session.AwaitingOrderNo = false
	session.State = models.StateMenuShown

	order, err := r.orders.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, ikas.ErrOrderNotFound) {
			r.sendText(ctx, session, msgOrderNotFound)
			return
		}
		r.log.Errorf("Order lookup %q for %s: %v", orderNumber, session.PhoneNumber, err)
		r.sendText(ctx, session, msgApology)
		return
	}

	session.RecordShownOrder(order.OrderNumber)
	session.CurrentOrder = order.OrderNumber
	session.State = models.StateOrderSelected
	r.sendOrderDetail(ctx, session, *order)
}

func (r *Router) handleOrderSelect(ctx context.Context, session *models.Session, orderNumber string) {
	// Only orders already shown to this sender may be selected.
	if !session.HasSeenOrder(orderNumber) {
		r.sendText(ctx, session, msgPickOption)
		return
	}

	order, err := r.orders.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		r.log.Errorf("Order select %q for %s: %v", orderNumber, session.PhoneNumber, err)
		r.sendText(ctx, session, msgApology)
		return
	}

	session.CurrentOrder = order.OrderNumber
	session.State = models.StateOrderSelected
	r.sendOrderDetail(ctx, session, *order)
}

func (r *Router) sendOrderDetail(ctx context.Context, session *models.Session, order models.Order) {
	if err := r.sender.SendButtons(ctx, session.PhoneNumber, orderDetailText(order), orderSubmenuButtons()); err != nil {
		r.log.Errorf("Sending order detail to %s: %v", session.PhoneNumber, err)
	}
}

// Submenu actions act on the stored CurrentOrder, never on message content.

func (r *Router) handleTracking(ctx context.Context, session *models.Session) {
	if session.CurrentOrder == "" {
		r.sendText(ctx, session, msgPickOrderFirst)
		return
	}

	order, err := r.orders.GetOrderByNumber(ctx, session.CurrentOrder)
	if err != nil {
		r.log.Errorf("Tracking lookup %s: %v", session.CurrentOrder, err)
		r.sendText(ctx, session, msgApology)
		return
	}

	if order.TrackingURL == "" {
		r.sendText(ctx, session, msgNotShippedYet)
		return
	}
	body := statusText(*order)
	if err := r.sender.SendURLButton(ctx, session.PhoneNumber, body, "Kargom Nerede?", order.TrackingURL); err != nil {
		r.log.Errorf("Sending tracking link to %s: %v", session.PhoneNumber, err)
	}
}

func (r *Router) handleStatus(ctx context.Context, session *models.Session) {
	if session.CurrentOrder == "" {
		r.sendText(ctx, session, msgPickOrderFirst)
		return
	}

	order, err := r.orders.GetOrderByNumber(ctx, session.CurrentOrder)
	if err != nil {
		r.log.Errorf("Status lookup %s: %v", session.CurrentOrder, err)
		r.sendText(ctx, session, msgApology)
		return
	}
	r.sendText(ctx, session, statusText(*order))
}

func (r *Router) handleReturnStart(ctx context.Context, session *models.Session) {
	if session.CurrentOrder == "" {
		r.sendText(ctx, session, msgPickOrderFirst)
		return
	}
	body := returnConfirmText(session.CurrentOrder)
	if err := r.sender.SendButtons(ctx, session.PhoneNumber, body, returnConfirmButtons()); err != nil {
		r.log.Errorf("Sending return confirmation to %s: %v", session.PhoneNumber, err)
	}
}

// handleReturnConfirm either submits a real return request or, when the
// upstream mutation is disabled, forwards the request to a human agent. It
// never fabricates an upstream success.
func (r *Router) handleReturnConfirm(ctx context.Context, session *models.Session) {
	if session.CurrentOrder == "" {
		r.sendText(ctx, session, msgPickOrderFirst)
		return
	}

	if r.returnsEnabled {
		if err := r.orders.CreateReturnRequest(ctx, session.CurrentOrder); err != nil {
			r.log.Errorf("Return request %s: %v", session.CurrentOrder, err)
			r.sendText(ctx, session, msgApology)
			return
		}
		r.sendText(ctx, session, msgReturnCreated)
		return
	}

	r.handleHumanAgent(ctx, session, models.TicketTopicReturn)
}

func (r *Router) handleHumanAgent(ctx context.Context, session *models.Session, topic string) {
	ticket := &models.SupportTicket{
		PhoneNumber: session.PhoneNumber,
		OrderNumber: session.CurrentOrder,
		Topic:       topic,
	}
	created, err := r.store.CreateSupportTicket(ticket)
	if err != nil {
		r.log.Errorf("Creating support ticket for %s: %v", session.PhoneNumber, err)
		r.sendText(ctx, session, msgApology)
		return
	}

	if r.agent != nil {
		if err := r.agent.NotifyAgent(created); err != nil {
			r.log.Errorf("Notifying agent about %s: %v", created.TicketID, err)
		}
	}

	if topic == models.TicketTopicReturn {
		r.sendText(ctx, session, returnForwardedText(created.TicketID))
	} else {
		r.sendText(ctx, session, agentNotifiedText(created.TicketID))
	}
}
