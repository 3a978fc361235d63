package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modaline/whatsapp-support-bot/internal/models"
)

// DatabaseStore persists sessions and tickets in PostgreSQL. Needed for
// multi-instance deployments where the in-memory map would split state.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) GetSession(phoneNumber string) (*models.Session, error) {
	var record SessionRecord
	err := d.db.Where("phone_number = ?", phoneNumber).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := json.Unmarshal([]byte(record.Context), &session); err != nil {
		return nil, fmt.Errorf("decoding session context: %w", err)
	}
	return &session, nil
}

func (d *DatabaseStore) SaveSession(session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session context: %w", err)
	}

	var record SessionRecord
	err = d.db.Where("phone_number = ?", session.PhoneNumber).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = SessionRecord{
			PhoneNumber: session.PhoneNumber,
			Context:     string(payload),
			ExpiresAt:   session.ExpiresAt,
		}
		return d.db.Create(&record).Error
	}
	if err != nil {
		return fmt.Errorf("loading session for save: %w", err)
	}

	record.Context = string(payload)
	record.ExpiresAt = session.ExpiresAt
	return d.db.Save(&record).Error
}

func (d *DatabaseStore) DeleteSession(phoneNumber string) error {
	result := d.db.Where("phone_number = ?", phoneNumber).Delete(&SessionRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (d *DatabaseStore) DeleteExpiredSessions() (int, error) {
	result := d.db.Where("expires_at < ?", time.Now()).Delete(&SessionRecord{})
	return int(result.RowsAffected), result.Error
}

func (d *DatabaseStore) ActiveSessionCount() int {
	var count int64
	d.db.Model(&SessionRecord{}).Where("expires_at >= ?", time.Now()).Count(&count)
	return int(count)
}

func (d *DatabaseStore) CreateSupportTicket(ticket *models.SupportTicket) (*models.SupportTicket, error) {
	if ticket.TicketID == "" {
		ticket.TicketID = fmt.Sprintf("DSK-%s", uuid.NewString()[:8])
	}
	ticket.Status = models.TicketStatusOpen
	if err := d.db.Create(ticket).Error; err != nil {
		return nil, fmt.Errorf("creating support ticket: %w", err)
	}
	return ticket, nil
}

func (d *DatabaseStore) GetSupportTicketsByPhone(phoneNumber string) ([]*models.SupportTicket, error) {
	var tickets []*models.SupportTicket
	err := d.db.Where("phone_number = ?", phoneNumber).Order("created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("loading support tickets: %w", err)
	}
	return tickets, nil
}
