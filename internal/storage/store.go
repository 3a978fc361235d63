package storage

import (
	"errors"
	"time"

	"github.com/modaline/whatsapp-support-bot/internal/models"
)

// ErrSessionNotFound is returned when no live session exists for a sender.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session and ticket persistence.
type Store interface {
	// Session operations
	GetSession(phoneNumber string) (*models.Session, error)
	SaveSession(session *models.Session) error
	DeleteSession(phoneNumber string) error
	DeleteExpiredSessions() (int, error)
	ActiveSessionCount() int

	// Support ticket operations
	CreateSupportTicket(ticket *models.SupportTicket) (*models.SupportTicket, error)
	GetSupportTicketsByPhone(phoneNumber string) ([]*models.SupportTicket, error)
}

// SessionRecord is the database row backing a session. Conversation state is
// kept as a JSON blob so schema churn in the Session struct stays cheap.
type SessionRecord struct {
	ID          uint   `gorm:"primaryKey"`
	PhoneNumber string `gorm:"uniqueIndex"`
	Context     string // JSON-encoded models.Session
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
