package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/anjiri1684/interview_prepper/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validate = validator.New()

type InterviewChallengeInput struct {
	Topic           string   `validate:"required"`
	Difficulty      string   `validate:"required,oneof=Easy Medium Hard"`
	CreatedBy       string   `validate:"required"`
	Title           string   `validate:"required"`
	Options         []string `validate:"len=4,dive,required"`
	CorrectAnswerID int      `validate:"min=0,max=3"`
	Explanation     string   `validate:"required"`
}

type ScenarioChallengeInput struct {
	Topic         string                    `validate:"required"`
	Difficulty    string                    `validate:"required,oneof=Easy Medium Hard"`
	CreatedBy     string                    `validate:"required"`
	Title         string                    `validate:"required"`
	Questions     []models.ScenarioQuestion `validate:"min=1,dive"`
	CorrectAnswer *string
	Explanation   *string
}

func (in *InterviewChallengeInput) normalize() {
	in.Topic = strings.TrimSpace(in.Topic)
	in.CreatedBy = strings.TrimSpace(in.CreatedBy)
	in.Title = strings.TrimSpace(in.Title)
}

func (in *ScenarioChallengeInput) normalize() {
	in.Topic = strings.TrimSpace(in.Topic)
	in.CreatedBy = strings.TrimSpace(in.CreatedBy)
	in.Title = strings.TrimSpace(in.Title)
}

func validationError(err error) error {
	return invalidf("%s", err.Error())
}

// ChallengeService stores generated challenges. Rows are never updated
// after creation.
type ChallengeService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewChallengeService(db *gorm.DB, log *logrus.Entry) *ChallengeService {
	return &ChallengeService{db: db, log: log}
}

// CreateInterviewChallenges validates every input before writing and stores
// the whole batch in one transaction.
func (s *ChallengeService) CreateInterviewChallenges(ctx context.Context, inputs []InterviewChallengeInput) ([]models.InterviewChallenge, error) {
	if len(inputs) == 0 {
		return nil, invalidf("at least one interview challenge is required")
	}

	challenges := make([]models.InterviewChallenge, 0, len(inputs))
	for i := range inputs {
		in := inputs[i]
		in.normalize()
		if err := validate.Struct(in); err != nil {
			return nil, validationError(err)
		}

		options, err := json.Marshal(in.Options)
		if err != nil {
			return nil, invalidf("options could not be serialized: %v", err)
		}
		challenges = append(challenges, models.InterviewChallenge{
			Topic:           in.Topic,
			Difficulty:      in.Difficulty,
			CreatedBy:       in.CreatedBy,
			Title:           in.Title,
			Options:         datatypes.JSON(options),
			CorrectAnswerID: in.CorrectAnswerID,
			Explanation:     in.Explanation,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&challenges).Error
	})
	if err != nil {
		return nil, storageError("creating interview challenge", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": challenges[0].CreatedBy,
		"topic":   challenges[0].Topic,
		"count":   len(challenges),
	}).Info("Created interview challenges")
	return challenges, nil
}

func (s *ChallengeService) CreateScenarioChallenge(ctx context.Context, in ScenarioChallengeInput) (*models.ScenarioChallenge, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	questions, err := json.Marshal(in.Questions)
	if err != nil {
		return nil, invalidf("questions could not be serialized: %v", err)
	}

	challenge := models.ScenarioChallenge{
		Topic:         in.Topic,
		Difficulty:    in.Difficulty,
		CreatedBy:     in.CreatedBy,
		Title:         in.Title,
		Questions:     datatypes.JSON(questions),
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
	}
	if err := s.db.WithContext(ctx).Create(&challenge).Error; err != nil {
		return nil, storageError("creating scenario challenge", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": challenge.CreatedBy, "topic": challenge.Topic}).
		Info("Created scenario challenge")
	return &challenge, nil
}

func (s *ChallengeService) ListInterviewByCreator(ctx context.Context, userID string) ([]models.InterviewChallenge, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("user_id cannot be empty")
	}
	var challenges []models.InterviewChallenge
	err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("date_created DESC").
		Find(&challenges).Error
	if err != nil {
		return nil, storageError("listing interview challenges", err)
	}
	return challenges, nil
}

func (s *ChallengeService) ListScenarioByCreator(ctx context.Context, userID string) ([]models.ScenarioChallenge, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("user_id cannot be empty")
	}
	var challenges []models.ScenarioChallenge
	err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("date_created DESC").
		Find(&challenges).Error
	if err != nil {
		return nil, storageError("listing scenario challenges", err)
	}
	return challenges, nil
}

func (s *ChallengeService) GetInterview(ctx context.Context, id uuid.UUID) (*models.InterviewChallenge, error) {
	var challenge models.InterviewChallenge
	if err := s.db.WithContext(ctx).First(&challenge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("interview challenge not found")
		}
		return nil, storageError("getting interview challenge", err)
	}
	return &challenge, nil
}

func (s *ChallengeService) GetScenario(ctx context.Context, id uuid.UUID) (*models.ScenarioChallenge, error) {
	var scenario models.ScenarioChallenge
	if err := s.db.WithContext(ctx).First(&scenario, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("scenario not found")
		}
		return nil, storageError("getting scenario challenge", err)
	}
	return &scenario, nil
}
