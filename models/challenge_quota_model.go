package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultDailyQuota = 10

// ChallengeQuota is unique per (user_id, challenge_type).
type ChallengeQuota struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string    `gorm:"size:255;not null;uniqueIndex:idx_quota_user_type" json:"user_id"`
	ChallengeType  string    `gorm:"size:20;not null;uniqueIndex:idx_quota_user_type" json:"challenge_type"`
	QuotaRemaining int       `gorm:"not null" json:"quota_remaining"`
	LastResetDate  time.Time `gorm:"not null" json:"last_reset_date"`
}

func (q *ChallengeQuota) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
