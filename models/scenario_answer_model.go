package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScenarioAnswer is written once on submission and updated once when the
// evaluation arrives. A nil LLMScore means the answer is still ungraded.
type ScenarioAnswer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"size:255;not null;index" json:"user_id"`
	ScenarioID       uuid.UUID `gorm:"type:uuid;not null;index" json:"scenario_id"`
	QuestionIndex    int       `gorm:"not null" json:"question_index"`
	UserAnswer       string    `gorm:"type:text;not null" json:"user_answer"`
	LLMScore         *int      `json:"llm_score"`
	LLMFeedback      *string   `gorm:"type:text" json:"llm_feedback"`
	LLMCorrectAnswer *string   `gorm:"type:text" json:"llm_correct_answer"`
	CreatedAt        time.Time `json:"created_at"`
}

func (a *ScenarioAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *ScenarioAnswer) IsGraded() bool {
	return a.LLMScore != nil
}
