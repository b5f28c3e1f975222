package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anjiri1684/interview_prepper/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnswerService records user answers. A scenario answer is saved ungraded
// and receives its evaluation in a separate commit, so a failed evaluation
// leaves the row ungraded until evaluation is retried for the same id.
type AnswerService struct {
	db         *gorm.DB
	challenges *ChallengeService
	log        *logrus.Entry
}

func NewAnswerService(db *gorm.DB, challenges *ChallengeService, log *logrus.Entry) *AnswerService {
	return &AnswerService{db: db, challenges: challenges, log: log}
}

func (s *AnswerService) SaveScenarioAnswer(ctx context.Context, userID string, scenarioID uuid.UUID, questionIndex int, userAnswer string) (*models.ScenarioAnswer, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("user_id cannot be empty")
	}
	if strings.TrimSpace(userAnswer) == "" {
		return nil, invalidf("user_answer cannot be empty")
	}
	if questionIndex < 0 {
		return nil, invalidf("invalid question_index '%d', must be 0 or greater", questionIndex)
	}

	scenario, err := s.challenges.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	questions, err := scenario.QuestionList()
	if err != nil {
		return nil, storageError("decoding scenario questions", err)
	}
	if len(questions) > 0 && questionIndex >= len(questions) {
		return nil, invalidf("invalid question_index '%d', scenario has %d questions", questionIndex, len(questions))
	}

	answer := models.ScenarioAnswer{
		UserID:        userID,
		ScenarioID:    scenario.ID,
		QuestionIndex: questionIndex,
		UserAnswer:    userAnswer,
	}
	if err := s.db.WithContext(ctx).Create(&answer).Error; err != nil {
		return nil, storageError("saving scenario answer", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"scenario_id":    scenario.ID,
		"question_index": questionIndex,
	}).Info("Saved scenario answer")
	return &answer, nil
}

// UpdateScenarioEvaluation attaches the evaluation to an ungraded answer.
func (s *AnswerService) UpdateScenarioEvaluation(ctx context.Context, answerID uuid.UUID, score int, feedback, correctAnswer string) (*models.ScenarioAnswer, error) {
	if score < 0 || score > 100 {
		return nil, invalidf("invalid score '%d', must be between 0 and 100", score)
	}

	var answer models.ScenarioAnswer
	if err := s.db.WithContext(ctx).First(&answer, "id = ?", answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("scenario answer %s not found", answerID)
		}
		return nil, storageError("getting scenario answer", err)
	}
	if answer.IsGraded() {
		return nil, invalidf("scenario answer %s has already been evaluated", answerID)
	}

	err := s.db.WithContext(ctx).Model(&answer).Updates(map[string]interface{}{
		"llm_score":          score,
		"llm_feedback":       feedback,
		"llm_correct_answer": correctAnswer,
	}).Error
	if err != nil {
		return nil, storageError("updating scenario evaluation", err)
	}

	answer.LLMScore = &score
	answer.LLMFeedback = &feedback
	answer.LLMCorrectAnswer = &correctAnswer
	s.log.WithFields(logrus.Fields{"answer_id": answerID, "score": score}).Info("Updated scenario evaluation")
	return &answer, nil
}

// GetScenarioAnswer only returns answers owned by userID.
func (s *AnswerService) GetScenarioAnswer(ctx context.Context, userID string, answerID uuid.UUID) (*models.ScenarioAnswer, error) {
	var answer models.ScenarioAnswer
	err := s.db.WithContext(ctx).First(&answer, "id = ? AND user_id = ?", answerID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("scenario answer not found")
		}
		return nil, storageError("getting scenario answer", err)
	}
	return &answer, nil
}

func (s *AnswerService) ListScenarioAnswers(ctx context.Context, userID string, scenarioID *uuid.UUID) ([]models.ScenarioAnswer, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("user_id cannot be empty")
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if scenarioID != nil {
		query = query.Where("scenario_id = ?", *scenarioID)
	}

	var answers []models.ScenarioAnswer
	if err := query.Order("created_at DESC").Find(&answers).Error; err != nil {
		return nil, storageError("listing scenario answers", err)
	}
	return answers, nil
}

// SubmitInterviewAnswer grades a multiple-choice pick against the stored key.
func (s *AnswerService) SubmitInterviewAnswer(ctx context.Context, userID string, challengeID uuid.UUID, userAnswerID int, timeTakenSeconds *int) (*models.InterviewAnswer, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidf("user_id cannot be empty")
	}
	if userAnswerID < 0 || userAnswerID >= models.OptionsPerQuestion {
		return nil, invalidf("invalid user_answer_id '%d', must be 0, 1, 2, or 3", userAnswerID)
	}
	if timeTakenSeconds != nil && *timeTakenSeconds < 0 {
		return nil, invalidf("time_taken_seconds cannot be negative")
	}

	challenge, err := s.challenges.GetInterview(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	answer := models.InterviewAnswer{
		UserID:           userID,
		ChallengeID:      challenge.ID,
		UserAnswerID:     userAnswerID,
		IsCorrect:        userAnswerID == challenge.CorrectAnswerID,
		TimeTakenSeconds: timeTakenSeconds,
	}
	if err := s.db.WithContext(ctx).Create(&answer).Error; err != nil {
		return nil, storageError("saving interview answer", err)
	}
	return &answer, nil
}
