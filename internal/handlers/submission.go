package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArowuTest/giveaway-backend/internal/config"
	"github.com/ArowuTest/giveaway-backend/internal/models"
	"github.com/ArowuTest/giveaway-backend/internal/selection"
)

var walletRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// submitRequest is the public entry-submission payload.
type submitRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	WalletAddress string  `json:"wallet_address" binding:"required"`
	TweetURL      *string `json:"tweet_url,omitempty" binding:"omitempty,url"`
	CampaignID    string  `json:"campaign_id" binding:"required"`
}

// SubmitEntry handles POST /api/v1/submit
func SubmitEntry(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	if !walletRe.MatchString(req.WalletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address format"})
		return
	}
	wallet := strings.ToLower(req.WalletAddress)

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	var campaign models.Campaign
	if err := config.DB.First(&campaign, "id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	if !campaign.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign is no longer active"})
		return
	}
	if campaign.EndTime != nil && time.Now().After(*campaign.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign has ended"})
		return
	}

	// One entry per wallet per campaign. The unique index backstops this
	// check against racing submissions.
	var existing models.Submission
	if err := config.DB.
		Where("campaign_id = ? AND wallet_address = ?", campaignID, wallet).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This wallet address has already entered this campaign"})
		return
	}

	now := time.Now()
	verificationHash := selection.VerificationHash(wallet, req.Email, campaignID.String(), now)
	sub := models.Submission{
		ID:               uuid.New(),
		CampaignID:       campaignID,
		Name:             req.Name,
		Email:            req.Email,
		WalletAddress:    wallet,
		TweetURL:         req.TweetURL,
		EntryCount:       1,
		IsVerified:       false,
		VerificationHash: &verificationHash,
		CreatedAt:        now,
	}
	if err := config.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Successfully entered the giveaway!",
		"submission": gin.H{
			"id":          sub.ID,
			"name":        sub.Name,
			"entry_count": sub.EntryCount,
			"created_at":  sub.CreatedAt,
		},
	})
}

// VerifySubmission handles POST /api/v1/admin/submissions/:id/verify
func VerifySubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var sub models.Submission
	if err := config.DB.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	if sub.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission already verified"})
		return
	}

	var campaign models.Campaign
	if err := config.DB.First(&campaign, "id = ?", sub.CampaignID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load campaign"})
		return
	}
	if !campaign.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign is not active"})
		return
	}
	if campaign.EndTime != nil && time.Now().After(*campaign.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign has ended"})
		return
	}

	// Integrity check against the hash issued at submission time.
	if sub.VerificationHash != nil {
		ok := selection.VerifyEntryHash(
			sub.WalletAddress, sub.Email, sub.CampaignID.String(),
			sub.CreatedAt, *sub.VerificationHash,
		)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification hash mismatch"})
			return
		}
	}

	if err := config.DB.Model(&sub).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify submission: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": gin.H{
			"id":             sub.ID,
			"name":           sub.Name,
			"wallet_address": sub.WalletAddress,
			"entry_count":    sub.EntryCount,
			"is_verified":    true,
		},
		"campaign": gin.H{
			"id":    campaign.ID,
			"title": campaign.Title,
		},
	})
}

// ListSubmissions handles GET /api/v1/admin/campaigns/:id/submissions,
// optionally filtered with ?verified=true|false.
func ListSubmissions(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	q := config.DB.Where("campaign_id = ?", campaignID)
	switch c.Query("verified") {
	case "true":
		q = q.Where("is_verified = ?", true)
	case "false":
		q = q.Where("is_verified = ?", false)
	}

	var subs []models.Submission
	if err := q.Order("created_at asc, id asc").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions: " + err.Error()})
		return
	}

	resp := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		resp = append(resp, gin.H{
			"id":             s.ID,
			"name":           s.Name,
			"email":          s.Email,
			"wallet_address": s.WalletAddress,
			"tweet_url":      s.TweetURL,
			"entry_count":    s.EntryCount,
			"is_verified":    s.IsVerified,
			"created_at":     s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"submissions": resp, "total": len(resp)})
}
