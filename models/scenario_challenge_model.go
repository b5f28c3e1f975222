package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScenarioQuestion is one prompt inside a scenario. Explanation carries the
// per-question grading notes produced alongside the prompt.
type ScenarioQuestion struct {
	Prompt      string `json:"prompt" validate:"required"`
	Explanation string `json:"explanation,omitempty"`
}

type ScenarioChallenge struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Topic         string         `gorm:"size:255;not null" json:"topic"`
	Difficulty    string         `gorm:"size:10;not null" json:"difficulty"`
	CreatedBy     string         `gorm:"size:255;not null;index" json:"created_by"`
	Title         string         `gorm:"type:text;not null" json:"title"`
	Questions     datatypes.JSON `gorm:"not null" json:"questions"`
	CorrectAnswer *string        `gorm:"type:text" json:"correct_answer"`
	Explanation   *string        `gorm:"type:text" json:"explanation"`
	DateCreated   time.Time      `gorm:"not null;index" json:"date_created"`

	Answers []ScenarioAnswer `gorm:"foreignKey:ScenarioID" json:"-"`
}

func (s *ScenarioChallenge) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.DateCreated.IsZero() {
		s.DateCreated = tx.NowFunc()
	}
	return nil
}

func (s *ScenarioChallenge) QuestionList() ([]ScenarioQuestion, error) {
	var questions []ScenarioQuestion
	if len(s.Questions) == 0 {
		return questions, nil
	}
	err := json.Unmarshal(s.Questions, &questions)
	return questions, err
}
