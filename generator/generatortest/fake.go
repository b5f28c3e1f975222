// Package generatortest provides a scriptable Generator for tests.
package generatortest

import (
	"context"
	"fmt"
	"sync"

	"github.com/anjiri1684/interview_prepper/generator"
	"github.com/anjiri1684/interview_prepper/models"
)

// Fake answers with the configured funcs, or with canned content when a func
// is nil. Calls are counted per kind.
type Fake struct {
	GenerateMCQFunc      func(ctx context.Context, topic, difficulty string, count int) ([]generator.MCQ, error)
	GenerateScenarioFunc func(ctx context.Context, topic, difficulty string, count int) (*generator.Scenario, error)
	EvaluateFunc         func(ctx context.Context, req generator.EvaluationRequest) (*generator.Evaluation, error)

	mu    sync.Mutex
	calls map[string]int
}

func (f *Fake) record(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[kind]++
}

func (f *Fake) Calls(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}

func (f *Fake) GenerateMCQ(ctx context.Context, topic, difficulty string, count int) ([]generator.MCQ, error) {
	f.record(generator.KindMCQ)
	if f.GenerateMCQFunc != nil {
		return f.GenerateMCQFunc(ctx, topic, difficulty, count)
	}
	return MCQs(topic, count), nil
}

func (f *Fake) GenerateScenario(ctx context.Context, topic, difficulty string, count int) (*generator.Scenario, error) {
	f.record(generator.KindScenario)
	if f.GenerateScenarioFunc != nil {
		return f.GenerateScenarioFunc(ctx, topic, difficulty, count)
	}
	return ScenarioWith(topic, count), nil
}

func (f *Fake) Evaluate(ctx context.Context, req generator.EvaluationRequest) (*generator.Evaluation, error) {
	f.record(generator.KindEvaluation)
	if f.EvaluateFunc != nil {
		return f.EvaluateFunc(ctx, req)
	}
	return &generator.Evaluation{Score: 73, Feedback: "Solid structure, add monitoring.", CorrectAnswer: "Reference answer"}, nil
}

func MCQs(topic string, count int) []generator.MCQ {
	out := make([]generator.MCQ, count)
	for i := range out {
		out[i] = generator.MCQ{
			Title:           fmt.Sprintf("%s question %d", topic, i+1),
			Options:         []string{"A", "B", "C", "D"},
			CorrectAnswerID: i % 4,
			Explanation:     "Because.",
		}
	}
	return out
}

func ScenarioWith(topic string, count int) *generator.Scenario {
	questions := make([]models.ScenarioQuestion, count)
	for i := range questions {
		questions[i] = models.ScenarioQuestion{
			Prompt:      fmt.Sprintf("Step %d for %s?", i+1, topic),
			Explanation: "Key points.",
		}
	}
	return &generator.Scenario{
		Title:         "You are an ML engineer working on " + topic,
		Questions:     questions,
		CorrectAnswer: "A strong answer covers data, model and monitoring.",
		Explanation:   "Technical depth and clarity.",
	}
}

var ErrUnavailable = fmt.Errorf("%w: fake outage", generator.ErrUpstreamUnavailable)

// Unavailable is an EvaluateFunc that always fails upstream.
func Unavailable(context.Context, generator.EvaluationRequest) (*generator.Evaluation, error) {
	return nil, ErrUnavailable
}

var _ generator.Generator = (*Fake)(nil)
