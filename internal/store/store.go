package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArowuTest/giveaway-backend/internal/models"
	"github.com/ArowuTest/giveaway-backend/internal/selection"
)

// GormStore implements selection.Store on top of the postgres schema.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetCampaignState reports existence and whether a winner is already
// committed. A malformed campaign ID is treated as not found.
func (s *GormStore) GetCampaignState(ctx context.Context, campaignID string) (selection.CampaignState, error) {
	id, err := uuid.Parse(campaignID)
	if err != nil {
		return selection.CampaignState{}, nil
	}

	var campaign models.Campaign
	if err := s.db.WithContext(ctx).
		Select("id", "winner_selected").
		First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return selection.CampaignState{}, nil
		}
		return selection.CampaignState{}, err
	}
	return selection.CampaignState{Exists: true, WinnerSelected: campaign.WinnerSelected}, nil
}

// GetVerifiedEntries fetches only verified submissions for the campaign.
func (s *GormStore) GetVerifiedEntries(ctx context.Context, campaignID string) ([]selection.Entry, error) {
	id, err := uuid.Parse(campaignID)
	if err != nil {
		return nil, nil
	}

	var subs []models.Submission
	if err := s.db.WithContext(ctx).
		Where("campaign_id = ? AND is_verified = ?", id, true).
		Order("created_at asc, id asc").
		Find(&subs).Error; err != nil {
		return nil, err
	}

	entries := make([]selection.Entry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, selection.Entry{
			ID:            sub.ID.String(),
			WalletAddress: sub.WalletAddress,
			Weight:        sub.EntryCount,
			Verified:      sub.IsVerified,
			CreatedAt:     sub.CreatedAt,
		})
	}
	return entries, nil
}

// CommitWinner flips winner_selected and writes winner + proof in one
// conditional UPDATE keyed on winner_selected = false. Of two racing
// committers only one can match the condition; the loser sees zero rows
// affected and gets ErrAlreadyDecided.
func (s *GormStore) CommitWinner(ctx context.Context, campaignID, entryID, proof string) error {
	id, err := uuid.Parse(campaignID)
	if err != nil {
		return selection.ErrCampaignNotFound
	}
	winnerID, err := uuid.Parse(entryID)
	if err != nil {
		return selection.ErrCampaignNotFound
	}

	res := s.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ? AND winner_selected = ?", id, false).
		Updates(map[string]interface{}{
			"winner_selected": true,
			"winner_entry_id": winnerID,
			"winner_proof":    proof,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Condition failed: either the campaign is gone or someone else
		// already committed.
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.Campaign{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return selection.ErrCampaignNotFound
		}
		return selection.ErrAlreadyDecided
	}
	return nil
}
