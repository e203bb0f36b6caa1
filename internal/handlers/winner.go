package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArowuTest/giveaway-backend/internal/config"
	"github.com/ArowuTest/giveaway-backend/internal/models"
	"github.com/ArowuTest/giveaway-backend/internal/notify"
	"github.com/ArowuTest/giveaway-backend/internal/selection"
	"github.com/ArowuTest/giveaway-backend/internal/store"
)

// selectWinnerRequest carries the campaign and the freshly observed external
// seed (a public blockchain block hash).
type selectWinnerRequest struct {
	CampaignID string `json:"campaign_id" binding:"required"`
	BlockHash  string `json:"block_hash" binding:"required"`
}

// selectionStatus maps a selection error kind to its HTTP status.
func selectionStatus(code string) int {
	switch code {
	case "CAMPAIGN_NOT_FOUND":
		return http.StatusNotFound
	case "ALREADY_DECIDED":
		return http.StatusConflict
	case "NO_ELIGIBLE_ENTRIES":
		return http.StatusUnprocessableEntity
	case "INVALID_SEED":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// SelectWinner handles POST /api/v1/admin/winner/select. The draw itself is
// performed by the selection service; this handler only maps errors and
// shapes the response.
func SelectWinner(c *gin.Context) {
	var req selectWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	svc := selection.NewService(store.New(config.DB))
	result, err := svc.SelectWinner(c.Request.Context(), req.CampaignID, req.BlockHash)
	if err != nil {
		if code := selection.Code(err); code != "" {
			c.JSON(selectionStatus(code), gin.H{"error": err.Error(), "code": code})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Winner selection failed: " + err.Error()})
		return
	}

	// Notify the winner out of band; a delivery failure never unwinds the
	// committed selection. The client lives and dies inside the goroutine so
	// Close cannot race the send.
	var winnerSub models.Submission
	if err := config.DB.First(&winnerSub, "id = ?", result.WinnerEntryID).Error; err == nil {
		go func(email, name, campaignID string) {
			mailer := notify.NewClient(config.Cfg)
			defer mailer.Close()
			mailer.SendWinnerNotification(email, name, campaignID)
		}(winnerSub.Email, winnerSub.Name, result.CampaignID)
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign_id": result.CampaignID,
		"winner": gin.H{
			"entry_id":       result.WinnerEntryID,
			"wallet_address": result.WinnerAddress,
		},
		"proof": result.Proof,
	})
}

// GetWinner handles GET /api/v1/campaigns/:id/winner — the committed result
// and its proof, for public audit.
func GetWinner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	var campaign models.Campaign
	if err := config.DB.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if !campaign.WinnerSelected || campaign.WinnerEntryID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No winner selected for this campaign yet"})
		return
	}

	var winnerSub models.Submission
	if err := config.DB.First(&winnerSub, "id = ?", *campaign.WinnerEntryID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load winner entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign_id": campaign.ID,
		"winner": gin.H{
			"entry_id":       winnerSub.ID,
			"name":           winnerSub.Name,
			"wallet_address": winnerSub.WalletAddress,
		},
		"proof": campaign.WinnerProof,
	})
}
