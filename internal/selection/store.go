package selection

import "context"

// CampaignState is the slice of campaign state the guard cares about.
type CampaignState struct {
	Exists         bool
	WinnerSelected bool
}

// Store is the persistence surface the selection service is built against.
// Implementations live elsewhere (gorm in production, an in-memory fake in
// tests).
type Store interface {
	GetCampaignState(ctx context.Context, campaignID string) (CampaignState, error)

	// GetVerifiedEntries returns the campaign's verified entries. Retrieval
	// order does not matter; BuildPool imposes the canonical order.
	GetVerifiedEntries(ctx context.Context, campaignID string) ([]Entry, error)

	// CommitWinner applies flag + winner + proof as a single conditional
	// write keyed on the campaign not yet having a winner. A racing commit
	// that loses the condition must return ErrAlreadyDecided; an unknown
	// campaign must return ErrCampaignNotFound. Nothing is written on
	// failure.
	CommitWinner(ctx context.Context, campaignID, entryID, proof string) error
}
