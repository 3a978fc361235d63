package models

import (
	"time"
)

// SessionState names the conversation position of a sender.
type SessionState string

const (
	StateNew                 SessionState = "new"
	StateMenuShown           SessionState = "menu_shown"
	StateAwaitingOrderNumber SessionState = "awaiting_order_number"
	StateOrderSelected       SessionState = "order_selected"
)

// Session stores per-sender conversation state across webhook deliveries.
// Keyed by the sender's WhatsApp phone number.
type Session struct {
	PhoneNumber     string       `json:"phone_number"`
	State           SessionState `json:"state"`
	MenuShown       bool         `json:"menu_shown"`
	AwaitingOrderNo bool         `json:"awaiting_order_no"`
	CurrentOrder    string       `json:"current_order"`
	// ShownOrders lists the order numbers already presented to this sender.
	// CurrentOrder may only be set to one of these.
	ShownOrders []string  `json:"shown_orders"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewSession creates a fresh session for a sender.
func NewSession(phoneNumber string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		PhoneNumber: phoneNumber,
		State:       StateNew,
		CreatedAt:   now,
		LastActive:  now,
		ExpiresAt:   now.Add(ttl),
	}
}

// Touch refreshes the activity timestamps.
func (s *Session) Touch(ttl time.Duration) {
	s.LastActive = time.Now()
	s.ExpiresAt = s.LastActive.Add(ttl)
}

// Expired reports whether the session TTL has passed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// HasSeenOrder reports whether the given order number was shown to this sender.
func (s *Session) HasSeenOrder(orderNumber string) bool {
	for _, n := range s.ShownOrders {
		if n == orderNumber {
			return true
		}
	}
	return false
}

// RecordShownOrder remembers an order number presented to this sender.
func (s *Session) RecordShownOrder(orderNumber string) {
	if !s.HasSeenOrder(orderNumber) {
		s.ShownOrders = append(s.ShownOrders, orderNumber)
	}
}

// ResetToMenu routes the conversation back to the main menu level. Clears the
// selected order and the order-number prompt so no stale flags survive.
func (s *Session) ResetToMenu() {
	s.State = StateMenuShown
	s.MenuShown = true
	s.AwaitingOrderNo = false
	s.CurrentOrder = ""
}
