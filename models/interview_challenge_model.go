package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const OptionsPerQuestion = 4

type InterviewChallenge struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Topic           string         `gorm:"size:255;not null" json:"topic"`
	Difficulty      string         `gorm:"size:10;not null" json:"difficulty"`
	CreatedBy       string         `gorm:"size:255;not null;index" json:"created_by"`
	Title           string         `gorm:"type:text;not null" json:"title"`
	Options         datatypes.JSON `gorm:"not null" json:"options"`
	CorrectAnswerID int            `gorm:"not null" json:"correct_answer_id"`
	Explanation     string         `gorm:"type:text;not null" json:"explanation"`
	DateCreated     time.Time      `gorm:"not null;index" json:"date_created"`
}

func (c *InterviewChallenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.DateCreated.IsZero() {
		c.DateCreated = tx.NowFunc()
	}
	return nil
}

// OptionList decodes the stored options column.
func (c *InterviewChallenge) OptionList() ([]string, error) {
	var options []string
	if len(c.Options) == 0 {
		return options, nil
	}
	err := json.Unmarshal(c.Options, &options)
	return options, err
}
