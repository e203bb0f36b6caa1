package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArowuTest/giveaway-backend/internal/config"
	"github.com/ArowuTest/giveaway-backend/internal/models"
)

// CampaignStats handles GET /api/v1/campaigns/:id/stats — entry counts and
// the total number of draw tickets in play.
func CampaignStats(c *gin.Context) {
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

	var total, verified int64
	if err := config.DB.Model(&models.Submission{}).
		Where("campaign_id = ?", id).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count submissions: " + err.Error()})
		return
	}
	if err := config.DB.Model(&models.Submission{}).
		Where("campaign_id = ? AND is_verified = ?", id, true).Count(&verified).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count submissions: " + err.Error()})
		return
	}

	// Sum of entry counts over verified submissions = pool size for the draw.
	var totalSlots int64
	if err := config.DB.Model(&models.Submission{}).
		Where("campaign_id = ? AND is_verified = ?", id, true).
		Select("COALESCE(SUM(entry_count), 0)").
		Scan(&totalSlots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum entry counts: " + err.Error()})
		return
	}

	var recent []models.Submission
	if err := config.DB.Where("campaign_id = ?", id).
		Order("created_at desc").
		Limit(10).
		Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent entries: " + err.Error()})
		return
	}

	recentResp := make([]gin.H, 0, len(recent))
	for _, s := range recent {
		recentResp = append(recentResp, gin.H{
			"id":             s.ID,
			"name":           s.Name,
			"wallet_address": s.WalletAddress,
			"entry_count":    s.EntryCount,
			"is_verified":    s.IsVerified,
			"created_at":     s.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign": gin.H{
			"id":              campaign.ID,
			"title":           campaign.Title,
			"is_active":       campaign.IsActive,
			"end_time":        campaign.EndTime,
			"winner_selected": campaign.WinnerSelected,
		},
		"submissions": gin.H{
			"total":      total,
			"verified":   verified,
			"unverified": total - verified,
		},
		"draw_slots":     totalSlots,
		"recent_entries": recentResp,
	})
}
