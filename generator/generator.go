// Package generator talks to the language model that writes challenges and
// grades scenario answers. Callers see a Generator and two failure kinds.
package generator

import (
	"context"
	"errors"

	"github.com/anjiri1684/interview_prepper/models"
)

const (
	KindMCQ        = "mcq"
	KindScenario   = "scenario"
	KindEvaluation = "evaluation"
)

var (
	// ErrMalformedOutput means the model answered but the text did not
	// parse into the expected shape.
	ErrMalformedOutput = errors.New("malformed generation output")
	// ErrUpstreamUnavailable means the model could not be reached or
	// returned an API error.
	ErrUpstreamUnavailable = errors.New("generation service unavailable")
)

type MCQ struct {
	Title           string   `json:"title"`
	Options         []string `json:"options"`
	CorrectAnswerID int      `json:"correct_answer_id"`
	Explanation     string   `json:"explanation"`
}

type Scenario struct {
	Title         string                    `json:"title"`
	Questions     []models.ScenarioQuestion `json:"questions"`
	CorrectAnswer string                    `json:"correct_answer"`
	Explanation   string                    `json:"explanation"`
}

type EvaluationRequest struct {
	UserAnswer      string
	ReferenceAnswer string
	ScenarioTitle   string
	Questions       []models.ScenarioQuestion
	QuestionIndex   int
}

type Evaluation struct {
	Score         int    `json:"score"`
	Feedback      string `json:"feedback"`
	CorrectAnswer string `json:"correct_answer"`
}

type Generator interface {
	// GenerateMCQ returns exactly count questions.
	GenerateMCQ(ctx context.Context, topic, difficulty string, count int) ([]MCQ, error)
	// GenerateScenario returns one scenario with exactly count questions.
	GenerateScenario(ctx context.Context, topic, difficulty string, count int) (*Scenario, error)
	Evaluate(ctx context.Context, req EvaluationRequest) (*Evaluation, error)
}
