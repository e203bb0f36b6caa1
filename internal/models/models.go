package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUserRole enumerates allowed roles.
type AdminUserRole string

const (
	RoleSuperAdmin AdminUserRole = "SUPERADMIN"
	RoleAdmin      AdminUserRole = "ADMIN"
)

// UserStatus enumerates admin account states.
type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

// AdminUser is a dashboard login.
type AdminUser struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username     string        `gorm:"uniqueIndex;not null"`
	Email        string        `gorm:"uniqueIndex;not null"`
	PasswordHash string        `gorm:"not null"`
	Role         AdminUserRole `gorm:"not null"`
	Status       UserStatus    `gorm:"not null;default:'Active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Campaign is one giveaway round. WinnerSelected flips to true exactly once,
// together with WinnerEntryID and WinnerProof in the same update; the three
// are never written separately.
type Campaign struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	ImageURL    string
	Rules       string
	IsActive    bool       `gorm:"not null;default:true"`
	EndTime     *time.Time `gorm:"default:null"`

	WinnerSelected bool       `gorm:"not null;default:false"`
	WinnerEntryID  *uuid.UUID `gorm:"type:uuid;default:null"`
	WinnerProof    *string    `gorm:"default:null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Submission is one participant's entry into one campaign. WalletAddress is
// stored lower-cased; the unique index enforces one entry per wallet per
// campaign. EntryCount is the number of draw tickets and is created >= 1.
type Submission struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CampaignID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_campaign_wallet,priority:1"`
	Name          string    `gorm:"not null"`
	Email         string    `gorm:"not null"`
	WalletAddress string    `gorm:"not null;uniqueIndex:idx_campaign_wallet,priority:2"`
	TweetURL      *string   `gorm:"default:null"`

	EntryCount       int     `gorm:"not null;default:1"`
	IsVerified       bool    `gorm:"not null;default:false;index"`
	VerificationHash *string `gorm:"default:null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Migrate will create/update the tables.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&AdminUser{},
		&Campaign{},
		&Submission{},
	)
}
