package selection

import (
	"context"
	"time"
)

// Result is the outcome of one committed selection run.
type Result struct {
	CampaignID    string
	WinnerEntryID string
	WinnerAddress string
	Proof         string
}

// Service runs the draw end to end: validate seed, check the campaign is
// still open, build the pool, derive the winner, commit once.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService wires the service to a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SelectWinner performs one selection attempt for a campaign. The state
// check up front only fails fast; the real at-most-once guard is the
// conditional CommitWinner, so two racing calls can both reach commit but
// only one can win it. Any failure before commit leaves the campaign
// untouched.
func (s *Service) SelectWinner(ctx context.Context, campaignID, seed string) (*Result, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}

	state, err := s.store.GetCampaignState(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !state.Exists {
		return nil, ErrCampaignNotFound
	}
	if state.WinnerSelected {
		return nil, ErrAlreadyDecided
	}

	entries, err := s.store.GetVerifiedEntries(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	pool := BuildPool(entries)
	if pool.Len() == 0 {
		return nil, ErrNoEligibleEntries
	}

	winner, err := Select(campaignID, seed, pool)
	if err != nil {
		return nil, err
	}

	proof := ProofHash(seed, campaignID, winner.EntryID, s.now())
	if err := s.store.CommitWinner(ctx, campaignID, winner.EntryID, proof); err != nil {
		return nil, err
	}

	return &Result{
		CampaignID:    campaignID,
		WinnerEntryID: winner.EntryID,
		WinnerAddress: winner.WalletAddress,
		Proof:         proof,
	}, nil
}
