package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modaline/whatsapp-support-bot/internal/models"
)

func TestMemoryStoreSessionLifecycle(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetSession("+905551234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session := models.NewSession("+905551234567", 30*time.Minute)
	require.NoError(t, store.SaveSession(session))

	loaded, err := store.GetSession("+905551234567")
	require.NoError(t, err)
	assert.Equal(t, session.PhoneNumber, loaded.PhoneNumber)
	assert.Equal(t, 1, store.ActiveSessionCount())

	require.NoError(t, store.DeleteSession("+905551234567"))
	_, err = store.GetSession("+905551234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreExpiredSessionNotReturned(t *testing.T) {
	store := NewMemoryStore()

	session := models.NewSession("+905551234567", -time.Minute)
	require.NoError(t, store.SaveSession(session))

	_, err := store.GetSession("+905551234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDeleteExpiredSessions(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.SaveSession(models.NewSession("+905551111111", -time.Minute)))
	require.NoError(t, store.SaveSession(models.NewSession("+905552222222", 30*time.Minute)))

	removed, err := store.DeleteExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.ActiveSessionCount())
}

func TestMemoryStoreSupportTickets(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateSupportTicket(&models.SupportTicket{
		PhoneNumber: "+905551234567",
		OrderNumber: "1001",
		Topic:       models.TicketTopicReturn,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.TicketID)
	assert.Equal(t, models.TicketStatusOpen, created.Status)

	tickets, err := store.GetSupportTicketsByPhone("+905551234567")
	require.NoError(t, err)
	assert.Len(t, tickets, 1)

	none, err := store.GetSupportTicketsByPhone("+905559999999")
	require.NoError(t, err)
	assert.Empty(t, none)
}
