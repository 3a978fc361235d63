package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionStartsNew(t *testing.T) {
	session := NewSession("+905551234567", 30*time.Minute)

	assert.Equal(t, StateNew, session.State)
	assert.False(t, session.MenuShown)
	assert.False(t, session.AwaitingOrderNo)
	assert.Empty(t, session.CurrentOrder)
	assert.False(t, session.Expired())
}

func TestSessionExpiry(t *testing.T) {
	session := NewSession("+905551234567", -time.Minute)
	assert.True(t, session.Expired())

	session.Touch(30 * time.Minute)
	assert.False(t, session.Expired())
}

func TestShownOrders(t *testing.T) {
	session := NewSession("+905551234567", 30*time.Minute)

	assert.False(t, session.HasSeenOrder("1001"))
	session.RecordShownOrder("1001")
	session.RecordShownOrder("1001")
	assert.True(t, session.HasSeenOrder("1001"))
	assert.Len(t, session.ShownOrders, 1)
}

func TestResetToMenuClearsFlags(t *testing.T) {
	session := NewSession("+905551234567", 30*time.Minute)
	session.MenuShown = true
	session.AwaitingOrderNo = true
	session.CurrentOrder = "1001"
	session.State = StateOrderSelected

	session.ResetToMenu()

	assert.Equal(t, StateMenuShown, session.State)
	assert.True(t, session.MenuShown)
	assert.False(t, session.AwaitingOrderNo)
	assert.Empty(t, session.CurrentOrder)
}
