package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/modaline/whatsapp-support-bot/internal/models"
)

// MemoryStore holds sessions and tickets in memory. Suitable for a single
// instance; sessions are bounded by TTL eviction, not by count.
type MemoryStore struct {
	sessions map[string]*models.Session
	tickets  []*models.SupportTicket

	sessionMu sync.RWMutex
	ticketMu  sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

func (m *MemoryStore) GetSession(phoneNumber string) (*models.Session, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[phoneNumber]
	if !exists || session.Expired() {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *MemoryStore) SaveSession(session *models.Session) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.sessions[session.PhoneNumber] = session
	return nil
}

func (m *MemoryStore) DeleteSession(phoneNumber string) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	if _, exists := m.sessions[phoneNumber]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, phoneNumber)
	return nil
}

func (m *MemoryStore) DeleteExpiredSessions() (int, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	removed := 0
	now := time.Now()
	for phone, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, phone)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) ActiveSessionCount() int {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	count := 0
	for _, session := range m.sessions {
		if !session.Expired() {
			count++
		}
	}
	return count
}

func (m *MemoryStore) CreateSupportTicket(ticket *models.SupportTicket) (*models.SupportTicket, error) {
	m.ticketMu.Lock()
	defer m.ticketMu.Unlock()

	ticket.ID = uint(len(m.tickets) + 1)
	if ticket.TicketID == "" {
		ticket.TicketID = fmt.Sprintf("DSK-%s", uuid.NewString()[:8])
	}
	ticket.Status = models.TicketStatusOpen
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt

	m.tickets = append(m.tickets, ticket)
	return ticket, nil
}

func (m *MemoryStore) GetSupportTicketsByPhone(phoneNumber string) ([]*models.SupportTicket, error) {
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()

	var result []*models.SupportTicket
	for _, ticket := range m.tickets {
		if ticket.PhoneNumber == phoneNumber {
			result = append(result, ticket)
		}
	}
	return result, nil
}
