package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterviewAnswer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"size:255;not null;index" json:"user_id"`
	ChallengeID      uuid.UUID `gorm:"type:uuid;not null;index" json:"challenge_id"`
	UserAnswerID     int       `gorm:"not null" json:"user_answer_id"`
	IsCorrect        bool      `gorm:"not null" json:"is_correct"`
	TimeTakenSeconds *int      `json:"time_taken_seconds"`
	DateCompleted    time.Time `gorm:"not null" json:"date_completed"`

	Challenge InterviewChallenge `gorm:"foreignKey:ChallengeID" json:"-"`
}

func (a *InterviewAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.DateCompleted.IsZero() {
		a.DateCompleted = tx.NowFunc()
	}
	return nil
}
