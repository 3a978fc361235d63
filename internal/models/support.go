package models

import (
	"time"
)

// SupportTicket is created when a conversation escalates to a human agent,
// including return requests while the upstream return mutation is disabled.
type SupportTicket struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TicketID    string `json:"ticket_id" gorm:"uniqueIndex"`
	PhoneNumber string `json:"phone_number" gorm:"index"`
	OrderNumber string `json:"order_number"`
	Topic       string `json:"topic"`  // "return_request" or "human_agent"
	Status      string `json:"status"` // "open", "resolved"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	TicketTopicReturn = "return_request"
	TicketTopicAgent  = "human_agent"

	TicketStatusOpen     = "open"
	TicketStatusResolved = "resolved"
)
