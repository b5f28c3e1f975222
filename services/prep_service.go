package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anjiri1684/interview_prepper/cache"
	"github.com/anjiri1684/interview_prepper/generator"
	"github.com/anjiri1684/interview_prepper/metrics"
	"github.com/anjiri1684/interview_prepper/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MaxInterviewQuestions = 7
	MaxScenarioQuestions  = 3
	minTopicLength        = 2
)

// ChallengeItem is the wire shape of one challenge of either type, used by
// generation responses and the history listing. Options and Questions carry
// the stored JSON as a string; clients JSON.parse them.
type ChallengeItem struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Topic           string    `json:"topic"`
	Difficulty      string    `json:"difficulty"`
	Title           string    `json:"title"`
	DateCreated     time.Time `json:"date_created"`
	Options         string    `json:"options,omitempty"`
	CorrectAnswerID *int      `json:"correct_answer_id,omitempty"`
	Questions       string    `json:"questions,omitempty"`
	CorrectAnswer   *string   `json:"correct_answer,omitempty"`
	Explanation     *string   `json:"explanation"`
}

func interviewItem(c models.InterviewChallenge) ChallengeItem {
	correct := c.CorrectAnswerID
	explanation := c.Explanation
	return ChallengeItem{
		ID:              c.ID,
		Type:            models.ChallengeTypeInterview,
		Topic:           c.Topic,
		Difficulty:      c.Difficulty,
		Title:           c.Title,
		DateCreated:     c.DateCreated,
		Options:         string(c.Options),
		CorrectAnswerID: &correct,
		Explanation:     &explanation,
	}
}

func scenarioItem(c models.ScenarioChallenge) ChallengeItem {
	return ChallengeItem{
		ID:            c.ID,
		Type:          models.ChallengeTypeScenario,
		Topic:         c.Topic,
		Difficulty:    c.Difficulty,
		Title:         c.Title,
		DateCreated:   c.DateCreated,
		Questions:     string(c.Questions),
		CorrectAnswer: c.CorrectAnswer,
		Explanation:   c.Explanation,
	}
}

type GenerationResult struct {
	Challenges     []ChallengeItem `json:"challenges"`
	QuotaRemaining int             `json:"quota_remaining"`
	ChallengeType  string          `json:"challenge_type"`
}

type History struct {
	Challenges     []ChallengeItem `json:"challenges"`
	TotalCount     int             `json:"total_count"`
	InterviewCount int             `json:"interview_count"`
	ScenarioCount  int             `json:"scenario_count"`
}

type QuotaView struct {
	UserID          string    `json:"user_id,omitempty"`
	ChallengeType   string    `json:"challenge_type,omitempty"`
	QuotaRemaining  int       `json:"quota_remaining"`
	LastResetDate   time.Time `json:"last_reset_date"`
	TotalDailyQuota int       `json:"total_daily_quota"`
}

type QuotaSummary struct {
	Quotas         map[string]QuotaView `json:"quotas"`
	MissingQuotas  []string             `json:"missing_quotas,omitempty"`
	Message        string               `json:"message,omitempty"`
	TotalRemaining int                  `json:"total_remaining"`
}

type AnswerResult struct {
	AnswerID      uuid.UUID `json:"answer_id"`
	Score         int       `json:"score"`
	Feedback      string    `json:"feedback"`
	CorrectAnswer string    `json:"correct_answer"`
	ScenarioID    uuid.UUID `json:"scenario_id"`
	QuestionIndex int       `json:"question_index"`
}

// PrepService runs the request pipelines: quota check, generation,
// persistence, quota decrement. Each step commits on its own; the model
// call never runs inside a transaction.
type PrepService struct {
	quotas     *QuotaService
	challenges *ChallengeService
	answers    *AnswerService
	gen        generator.Generator
	cache      cache.HistoryCache
	metrics    *metrics.Metrics
	log        *logrus.Entry
}

func NewPrepService(
	quotas *QuotaService,
	challenges *ChallengeService,
	answers *AnswerService,
	gen generator.Generator,
	historyCache cache.HistoryCache,
	m *metrics.Metrics,
	log *logrus.Entry,
) *PrepService {
	if historyCache == nil {
		historyCache = cache.Noop{}
	}
	return &PrepService{
		quotas:     quotas,
		challenges: challenges,
		answers:    answers,
		gen:        gen,
		cache:      historyCache,
		metrics:    m,
		log:        log,
	}
}

func maxQuestions(challengeType string) int {
	if challengeType == models.ChallengeTypeScenario {
		return MaxScenarioQuestions
	}
	return MaxInterviewQuestions
}

func validateGeneration(challengeType, difficulty, topic string, count int) error {
	if !models.IsValidDifficulty(difficulty) {
		return invalidf("difficulty must be \"Easy\", \"Medium\", or \"Hard\"")
	}
	if topic == "" {
		return invalidf("topic cannot be empty")
	}
	if len([]rune(topic)) < minTopicLength {
		return invalidf("topic must be at least %d characters long", minTopicLength)
	}
	if count < 1 {
		return invalidf("num_questions must be at least 1")
	}
	if limit := maxQuestions(challengeType); count > limit {
		return invalidf("%s challenges can have maximum %d questions", challengeType, limit)
	}
	return nil
}

// reserve makes sure the caller has allowance left before anything is
// generated. Nothing is written besides quota bootstrap and daily reset.
func (s *PrepService) reserve(ctx context.Context, userID, challengeType string) (*models.ChallengeQuota, error) {
	quota, err := s.quotas.Ensure(ctx, userID, challengeType)
	if err != nil {
		return nil, err
	}
	if quota.QuotaRemaining <= 0 {
		s.metrics.QuotaRejections.WithLabelValues(challengeType).Inc()
		return nil, fmt.Errorf("%w: you have reached your daily quota for %s challenges", ErrQuotaExhausted, challengeType)
	}
	return quota, nil
}

// settle decrements the quota after the challenge is committed. A failure
// here leaves the challenge stored and the quota untouched.
func (s *PrepService) settle(ctx context.Context, quota *models.ChallengeQuota) (*models.ChallengeQuota, error) {
	consumed, err := s.quotas.Consume(ctx, quota)
	if err != nil {
		s.log.WithError(err).WithField("user_id", quota.UserID).
			Error("Challenge stored but quota was not decremented")
		return nil, err
	}
	return consumed, nil
}

func (s *PrepService) GenerateInterview(ctx context.Context, userID, difficulty, topic string, count int) (*GenerationResult, error) {
	topic = strings.TrimSpace(topic)
	if err := validateGeneration(models.ChallengeTypeInterview, difficulty, topic, count); err != nil {
		return nil, err
	}

	quota, err := s.reserve(ctx, userID, models.ChallengeTypeInterview)
	if err != nil {
		return nil, err
	}

	mcqs, err := s.gen.GenerateMCQ(ctx, topic, difficulty, count)
	if err != nil {
		return nil, fmt.Errorf("generating interview challenge: %w", err)
	}

	inputs := make([]InterviewChallengeInput, len(mcqs))
	for i, q := range mcqs {
		inputs[i] = InterviewChallengeInput{
			Topic:           topic,
			Difficulty:      difficulty,
			CreatedBy:       userID,
			Title:           q.Title,
			Options:         q.Options,
			CorrectAnswerID: q.CorrectAnswerID,
			Explanation:     q.Explanation,
		}
	}
	created, err := s.challenges.CreateInterviewChallenges(ctx, inputs)
	if err != nil {
		return nil, err
	}
	s.metrics.ChallengesCreated.WithLabelValues(models.ChallengeTypeInterview).Add(float64(len(created)))
	s.cache.Invalidate(ctx, userID)

	if quota, err = s.settle(ctx, quota); err != nil {
		return nil, err
	}

	items := make([]ChallengeItem, len(created))
	for i, c := range created {
		items[i] = interviewItem(c)
	}
	return &GenerationResult{
		Challenges:     items,
		QuotaRemaining: quota.QuotaRemaining,
		ChallengeType:  models.ChallengeTypeInterview,
	}, nil
}

func (s *PrepService) GenerateScenario(ctx context.Context, userID, difficulty, topic string, count int) (*GenerationResult, error) {
	topic = strings.TrimSpace(topic)
	if err := validateGeneration(models.ChallengeTypeScenario, difficulty, topic, count); err != nil {
		return nil, err
	}

	quota, err := s.reserve(ctx, userID, models.ChallengeTypeScenario)
	if err != nil {
		return nil, err
	}

	generated, err := s.gen.GenerateScenario(ctx, topic, difficulty, count)
	if err != nil {
		return nil, fmt.Errorf("generating scenario challenge: %w", err)
	}

	created, err := s.challenges.CreateScenarioChallenge(ctx, ScenarioChallengeInput{
		Topic:         topic,
		Difficulty:    difficulty,
		CreatedBy:     userID,
		Title:         generated.Title,
		Questions:     generated.Questions,
		CorrectAnswer: optional(generated.CorrectAnswer),
		Explanation:   optional(generated.Explanation),
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ChallengesCreated.WithLabelValues(models.ChallengeTypeScenario).Inc()
	s.cache.Invalidate(ctx, userID)

	if quota, err = s.settle(ctx, quota); err != nil {
		return nil, err
	}

	return &GenerationResult{
		Challenges:     []ChallengeItem{scenarioItem(*created)},
		QuotaRemaining: quota.QuotaRemaining,
		ChallengeType:  models.ChallengeTypeScenario,
	}, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// History lists every challenge the user generated, newest first.
func (s *PrepService) History(ctx context.Context, userID string) (*History, error) {
	if payload, ok := s.cache.Get(ctx, userID); ok {
		var cached History
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	interviews, err := s.challenges.ListInterviewByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	scenarios, err := s.challenges.ListScenarioByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ChallengeItem, 0, len(interviews)+len(scenarios))
	for _, c := range interviews {
		items = append(items, interviewItem(c))
	}
	for _, c := range scenarios {
		items = append(items, scenarioItem(c))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DateCreated.After(items[j].DateCreated)
	})

	history := &History{
		Challenges:     items,
		TotalCount:     len(items),
		InterviewCount: len(interviews),
		ScenarioCount:  len(scenarios),
	}
	if payload, err := json.Marshal(history); err == nil {
		s.cache.Set(ctx, userID, payload)
	}
	return history, nil
}

func (s *PrepService) view(q *models.ChallengeQuota) QuotaView {
	return QuotaView{
		QuotaRemaining:  q.QuotaRemaining,
		LastResetDate:   q.LastResetDate,
		TotalDailyQuota: s.quotas.DailyQuota(),
	}
}

// InitializeQuotas creates any missing rows and applies the daily reset.
func (s *PrepService) InitializeQuotas(ctx context.Context, userID string) (*QuotaSummary, error) {
	summary := &QuotaSummary{Quotas: make(map[string]QuotaView)}
	for _, challengeType := range models.ChallengeTypes {
		quota, err := s.quotas.Ensure(ctx, userID, challengeType)
		if err != nil {
			return nil, err
		}
		summary.Quotas[challengeType] = s.view(quota)
		summary.TotalRemaining += quota.QuotaRemaining
	}
	return summary, nil
}

// QuotaSnapshot reads existing rows without creating any. Missing types are
// listed so the client knows to call initialize.
func (s *PrepService) QuotaSnapshot(ctx context.Context, userID string) (*QuotaSummary, error) {
	summary := &QuotaSummary{Quotas: make(map[string]QuotaView)}
	for _, challengeType := range models.ChallengeTypes {
		quota, err := s.readQuota(ctx, userID, challengeType)
		if err != nil {
			if isNotFound(err) {
				summary.MissingQuotas = append(summary.MissingQuotas, challengeType)
				continue
			}
			return nil, err
		}
		summary.Quotas[challengeType] = s.view(quota)
		summary.TotalRemaining += quota.QuotaRemaining
	}
	if len(summary.MissingQuotas) > 0 {
		summary.Message = "Some quotas are missing. Use POST /api/quotas/initialize to create them."
	}
	return summary, nil
}

func (s *PrepService) Quota(ctx context.Context, userID, challengeType string) (*QuotaView, error) {
	quota, err := s.readQuota(ctx, userID, challengeType)
	if err != nil {
		if isNotFound(err) {
			return nil, notFoundf("no quota found for challenge type '%s', use POST /api/quotas/initialize to create quotas", challengeType)
		}
		return nil, err
	}
	view := s.view(quota)
	view.UserID = userID
	view.ChallengeType = challengeType
	return &view, nil
}

func (s *PrepService) readQuota(ctx context.Context, userID, challengeType string) (*models.ChallengeQuota, error) {
	quota, err := s.quotas.Get(ctx, userID, challengeType)
	if err != nil {
		return nil, err
	}
	return s.quotas.ResetIfNeeded(ctx, quota)
}

// ProvisionUser creates both quota rows for a newly registered user. It is
// safe to call more than once.
func (s *PrepService) ProvisionUser(ctx context.Context, userID string) error {
	for _, challengeType := range models.ChallengeTypes {
		if _, err := s.quotas.GetOrCreate(ctx, userID, challengeType); err != nil {
			return err
		}
	}
	return nil
}

func (s *PrepService) ResetAllQuotas(ctx context.Context) (int64, error) {
	return s.quotas.ForceResetAll(ctx)
}

// SubmitScenarioAnswer saves the answer, then grades it. When grading fails
// the saved answer stays ungraded and EvaluateAnswer can be retried with its
// id.
func (s *PrepService) SubmitScenarioAnswer(ctx context.Context, userID string, scenarioID uuid.UUID, questionIndex int, userAnswer string) (*AnswerResult, error) {
	scenario, err := s.challenges.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	answer, err := s.answers.SaveScenarioAnswer(ctx, userID, scenario.ID, questionIndex, userAnswer)
	if err != nil {
		return nil, err
	}

	return s.evaluate(ctx, scenario, answer)
}

// EvaluateAnswer grades a previously saved answer. Already graded answers
// are returned as stored without calling the model again.
func (s *PrepService) EvaluateAnswer(ctx context.Context, userID string, answerID uuid.UUID) (*AnswerResult, error) {
	answer, err := s.answers.GetScenarioAnswer(ctx, userID, answerID)
	if err != nil {
		return nil, err
	}
	if answer.IsGraded() {
		return storedResult(answer), nil
	}

	scenario, err := s.challenges.GetScenario(ctx, answer.ScenarioID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, scenario, answer)
}

func (s *PrepService) evaluate(ctx context.Context, scenario *models.ScenarioChallenge, answer *models.ScenarioAnswer) (*AnswerResult, error) {
	questions, err := scenario.QuestionList()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding scenario questions: %v", ErrStorage, err)
	}

	reference := ""
	if scenario.CorrectAnswer != nil {
		reference = *scenario.CorrectAnswer
	}

	eval, err := s.gen.Evaluate(ctx, generator.EvaluationRequest{
		UserAnswer:      answer.UserAnswer,
		ReferenceAnswer: reference,
		ScenarioTitle:   scenario.Title,
		Questions:       questions,
		QuestionIndex:   answer.QuestionIndex,
	})
	if err != nil {
		s.log.WithError(err).WithField("answer_id", answer.ID).Warn("Scenario answer left ungraded")
		return nil, fmt.Errorf("evaluating scenario answer %s: %w", answer.ID, err)
	}

	updated, err := s.answers.UpdateScenarioEvaluation(ctx, answer.ID, eval.Score, eval.Feedback, eval.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	return storedResult(updated), nil
}

func storedResult(a *models.ScenarioAnswer) *AnswerResult {
	result := &AnswerResult{
		AnswerID:      a.ID,
		ScenarioID:    a.ScenarioID,
		QuestionIndex: a.QuestionIndex,
	}
	if a.LLMScore != nil {
		result.Score = *a.LLMScore
	}
	if a.LLMFeedback != nil {
		result.Feedback = *a.LLMFeedback
	}
	if a.LLMCorrectAnswer != nil {
		result.CorrectAnswer = *a.LLMCorrectAnswer
	}
	return result
}

func (s *PrepService) ScenarioAnswer(ctx context.Context, userID string, answerID uuid.UUID) (*models.ScenarioAnswer, error) {
	return s.answers.GetScenarioAnswer(ctx, userID, answerID)
}

func (s *PrepService) ScenarioAnswers(ctx context.Context, userID string, scenarioID *uuid.UUID) ([]models.ScenarioAnswer, error) {
	return s.answers.ListScenarioAnswers(ctx, userID, scenarioID)
}

func (s *PrepService) SubmitInterviewAnswer(ctx context.Context, userID string, challengeID uuid.UUID, userAnswerID int, timeTakenSeconds *int) (*models.InterviewAnswer, error) {
	return s.answers.SubmitInterviewAnswer(ctx, userID, challengeID, userAnswerID, timeTakenSeconds)
}
