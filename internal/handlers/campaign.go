package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArowuTest/giveaway-backend/internal/config"
	"github.com/ArowuTest/giveaway-backend/internal/models"
)

// campaignCreatePayload is the JSON shape for creating a campaign.
type campaignCreatePayload struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Rules       string  `json:"rules"`
	EndTime     *string `json:"end_time,omitempty"` // RFC 3339
}

type campaignUpdatePayload struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Rules       *string `json:"rules,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
}

func campaignJSON(cp models.Campaign, entryTotal int64) gin.H {
	return gin.H{
		"id":              cp.ID,
		"title":           cp.Title,
		"description":     cp.Description,
		"image_url":       cp.ImageURL,
		"rules":           cp.Rules,
		"is_active":       cp.IsActive,
		"end_time":        cp.EndTime,
		"winner_selected": cp.WinnerSelected,
		"entry_total":     entryTotal,
		"created_at":      cp.CreatedAt,
		"updated_at":      cp.UpdatedAt,
	}
}

// ListPublicCampaigns handles GET /api/v1/campaigns — active campaigns with
// their submission counts, newest first.
func ListPublicCampaigns(c *gin.Context) {
	var campaigns []models.Campaign
	if err := config.DB.
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns: " + err.Error()})
		return
	}

	resp := make([]gin.H, 0, len(campaigns))
	for _, cp := range campaigns {
		var count int64
		config.DB.Model(&models.Submission{}).Where("campaign_id = ?", cp.ID).Count(&count)
		resp = append(resp, campaignJSON(cp, count))
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": resp, "total": len(resp)})
}

// GetCampaign handles GET /api/v1/campaigns/:id
func GetCampaign(c *gin.Context) {
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

	var count int64
	config.DB.Model(&models.Submission{}).Where("campaign_id = ?", campaign.ID).Count(&count)
	c.JSON(http.StatusOK, campaignJSON(campaign, count))
}

// ListAllCampaigns handles GET /api/v1/admin/campaigns — includes inactive
// campaigns and winner details.
func ListAllCampaigns(c *gin.Context) {
	var campaigns []models.Campaign
	if err := config.DB.Order("created_at desc").Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns: " + err.Error()})
		return
	}

	resp := make([]gin.H, 0, len(campaigns))
	for _, cp := range campaigns {
		var count int64
		config.DB.Model(&models.Submission{}).Where("campaign_id = ?", cp.ID).Count(&count)
		item := campaignJSON(cp, count)
		item["winner_entry_id"] = cp.WinnerEntryID
		item["winner_proof"] = cp.WinnerProof
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCampaign handles POST /api/v1/admin/campaigns
func CreateCampaign(c *gin.Context) {
	var payload campaignCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	campaign := models.Campaign{
		ID:          uuid.New(),
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Rules:       payload.Rules,
		IsActive:    true,
	}
	if payload.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *payload.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_time; use RFC 3339"})
			return
		}
		campaign.EndTime = &t
	}

	if err := config.DB.Create(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, campaignJSON(campaign, 0))
}

// UpdateCampaign handles PUT /api/v1/admin/campaigns/:id. Winner fields are
// never writable here; they only move through the selection commit.
func UpdateCampaign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	var payload campaignUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
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

	if payload.Title != nil {
		campaign.Title = *payload.Title
	}
	if payload.Description != nil {
		campaign.Description = *payload.Description
	}
	if payload.ImageURL != nil {
		campaign.ImageURL = *payload.ImageURL
	}
	if payload.Rules != nil {
		campaign.Rules = *payload.Rules
	}
	if payload.IsActive != nil {
		campaign.IsActive = *payload.IsActive
	}
	if payload.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *payload.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_time; use RFC 3339"})
			return
		}
		campaign.EndTime = &t
	}

	if err := config.DB.Save(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign: " + err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Submission{}).Where("campaign_id = ?", campaign.ID).Count(&count)
	c.JSON(http.StatusOK, campaignJSON(campaign, count))
}

// DeactivateCampaign handles DELETE /api/v1/admin/campaigns/:id. Campaigns
// are deactivated rather than deleted so past winners and proofs stay
// auditable.
func DeactivateCampaign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
		return
	}

	res := config.DB.Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate campaign: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deactivated": id})
}
