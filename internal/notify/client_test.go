package notify

import (
	"testing"

	"github.com/ArowuTest/giveaway-backend/internal/config"
)

func TestSendWithoutAPIKey(t *testing.T) {
	c := NewClient(&config.AppConfig{})
	if err := c.SendWinnerNotification("winner@example.com", "alice", "c1"); err != nil {
		t.Errorf("keyless send should no-op, got %v", err)
	}
	// Close after the send has finished must always be safe.
	c.Close()
}

func TestNewClientNilConfig(t *testing.T) {
	c := NewClient(nil)
	if err := c.SendWinnerNotification("winner@example.com", "alice", "c1"); err != nil {
		t.Errorf("nil-config client should no-op, got %v", err)
	}
	c.Close()
}
