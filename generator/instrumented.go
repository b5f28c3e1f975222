package generator

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/interview_prepper/metrics"
)

type instrumented struct {
	next    Generator
	metrics *metrics.Metrics
}

// Instrument records call duration and failure reasons for every call on g.
func Instrument(g Generator, m *metrics.Metrics) Generator {
	return &instrumented{next: g, metrics: m}
}

func (i *instrumented) observe(kind string, start time.Time, err error) {
	i.metrics.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}
	reason := "upstream"
	if errors.Is(err, ErrMalformedOutput) {
		reason = "malformed"
	}
	i.metrics.GenerationFailures.WithLabelValues(kind, reason).Inc()
}

func (i *instrumented) GenerateMCQ(ctx context.Context, topic, difficulty string, count int) ([]MCQ, error) {
	start := time.Now()
	out, err := i.next.GenerateMCQ(ctx, topic, difficulty, count)
	i.observe(KindMCQ, start, err)
	return out, err
}

func (i *instrumented) GenerateScenario(ctx context.Context, topic, difficulty string, count int) (*Scenario, error) {
	start := time.Now()
	out, err := i.next.GenerateScenario(ctx, topic, difficulty, count)
	i.observe(KindScenario, start, err)
	return out, err
}

func (i *instrumented) Evaluate(ctx context.Context, req EvaluationRequest) (*Evaluation, error) {
	start := time.Now()
	out, err := i.next.Evaluate(ctx, req)
	i.observe(KindEvaluation, start, err)
	return out, err
}
