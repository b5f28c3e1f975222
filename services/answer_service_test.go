package services

import (
	"context"
	"testing"

	"github.com/anjiri1684/interview_prepper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScenario(t *testing.T, f *fixture, questions int) *models.ScenarioChallenge {
	t.Helper()

	qs := make([]models.ScenarioQuestion, questions)
	for i := range qs {
		qs[i] = models.ScenarioQuestion{Prompt: "Explain your approach"}
	}
	scenario, err := f.challenges.CreateScenarioChallenge(context.Background(), ScenarioChallengeInput{
		Topic:      "Data Pipelines",
		Difficulty: models.DifficultyMedium,
		CreatedBy:  "user_1",
		Title:      "Your nightly ETL job is late",
		Questions:  qs,
	})
	require.NoError(t, err)
	return scenario
}

func TestSaveScenarioAnswerStartsUngraded(t *testing.T) {
	f := newFixture(t)
	scenario := seedScenario(t, f, 2)

	answer, err := f.answers.SaveScenarioAnswer(context.Background(), "user_1", scenario.ID, 1, "Partition the input")
	require.NoError(t, err)

	stored, err := f.answers.GetScenarioAnswer(context.Background(), "user_1", answer.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LLMScore)
	assert.Nil(t, stored.LLMFeedback)
	assert.False(t, stored.IsGraded())
	assert.Equal(t, 1, stored.QuestionIndex)
	assert.Equal(t, "Partition the input", stored.UserAnswer)
}

func TestSaveScenarioAnswerValidation(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		answer string
	}{
		{name: "empty answer", index: 0, answer: ""},
		{name: "blank answer", index: 0, answer: "   "},
		{name: "negative index", index: -1, answer: "ok"},
		{name: "index past last question", index: 2, answer: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			scenario := seedScenario(t, f, 2)

			_, err := f.answers.SaveScenarioAnswer(context.Background(), "user_1", scenario.ID, tt.index, tt.answer)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, int64(0), f.count(t, &models.ScenarioAnswer{}))
		})
	}
}

func TestSaveScenarioAnswerUnknownScenario(t *testing.T) {
	f := newFixture(t)

	_, err := f.answers.SaveScenarioAnswer(context.Background(), "user_1", uuid.New(), 0, "anything")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), f.count(t, &models.ScenarioAnswer{}))
}

func TestSaveScenarioAnswerUnreadableQuestions(t *testing.T) {
	f := newFixture(t)
	scenario := seedScenario(t, f, 2)
	require.NoError(t, f.db.Model(&models.ScenarioChallenge{}).
		Where("id = ?", scenario.ID).Update("questions", "not json").Error)

	_, err := f.answers.SaveScenarioAnswer(context.Background(), "user_1", scenario.ID, 5, "anything")

	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "decoding scenario questions")
	assert.Equal(t, int64(0), f.count(t, &models.ScenarioAnswer{}))
}

func TestUpdateScenarioEvaluation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scenario := seedScenario(t, f, 1)
	answer, err := f.answers.SaveScenarioAnswer(ctx, "user_1", scenario.ID, 0, "Add retries")
	require.NoError(t, err)

	updated, err := f.answers.UpdateScenarioEvaluation(ctx, answer.ID, 64, "Mention alerting.", "Retries plus alerting")
	require.NoError(t, err)
	require.NotNil(t, updated.LLMScore)
	assert.Equal(t, 64, *updated.LLMScore)

	stored, err := f.answers.GetScenarioAnswer(ctx, "user_1", answer.ID)
	require.NoError(t, err)
	require.True(t, stored.IsGraded())
	assert.Equal(t, 64, *stored.LLMScore)
	assert.Equal(t, "Mention alerting.", *stored.LLMFeedback)
	assert.Equal(t, "Retries plus alerting", *stored.LLMCorrectAnswer)
	assert.Equal(t, "Add retries", stored.UserAnswer)
	assert.Equal(t, 0, stored.QuestionIndex)

	_, err = f.answers.UpdateScenarioEvaluation(ctx, answer.ID, 90, "again", "again")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateScenarioEvaluationErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.answers.UpdateScenarioEvaluation(ctx, uuid.New(), 50, "f", "c")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.answers.UpdateScenarioEvaluation(ctx, uuid.New(), 101, "f", "c")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScenarioAnswersAreScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scenario := seedScenario(t, f, 1)
	other := seedScenario(t, f, 1)

	mine, err := f.answers.SaveScenarioAnswer(ctx, "user_1", scenario.ID, 0, "mine")
	require.NoError(t, err)
	_, err = f.answers.SaveScenarioAnswer(ctx, "user_1", other.ID, 0, "other scenario")
	require.NoError(t, err)
	_, err = f.answers.SaveScenarioAnswer(ctx, "user_2", scenario.ID, 0, "theirs")
	require.NoError(t, err)

	_, err = f.answers.GetScenarioAnswer(ctx, "user_2", mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := f.answers.ListScenarioAnswers(ctx, "user_1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.answers.ListScenarioAnswers(ctx, "user_1", &scenario.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, mine.ID, filtered[0].ID)
}

func TestSubmitInterviewAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.challenges.CreateInterviewChallenges(ctx, []InterviewChallengeInput{validInterviewInput()})
	require.NoError(t, err)
	challengeID := created[0].ID

	right, err := f.answers.SubmitInterviewAnswer(ctx, "user_1", challengeID, 1, nil)
	require.NoError(t, err)
	assert.True(t, right.IsCorrect)

	seconds := 42
	wrong, err := f.answers.SubmitInterviewAnswer(ctx, "user_1", challengeID, 2, &seconds)
	require.NoError(t, err)
	assert.False(t, wrong.IsCorrect)
	assert.Equal(t, 42, *wrong.TimeTakenSeconds)

	_, err = f.answers.SubmitInterviewAnswer(ctx, "user_1", challengeID, 4, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.answers.SubmitInterviewAnswer(ctx, "user_1", uuid.New(), 0, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int64(2), f.count(t, &models.InterviewAnswer{}))
}
