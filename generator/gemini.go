package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Gemini implements Generator on the Google Gen AI SDK.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

func (g *Gemini) complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", malformed("model returned no text")
	}
	return text, nil
}

func (g *Gemini) GenerateMCQ(ctx context.Context, topic, difficulty string, count int) ([]MCQ, error) {
	text, err := g.complete(ctx, mcqPrompt(topic, difficulty, count))
	if err != nil {
		return nil, err
	}
	return ParseMCQs(text, count)
}

func (g *Gemini) GenerateScenario(ctx context.Context, topic, difficulty string, count int) (*Scenario, error) {
	text, err := g.complete(ctx, scenarioPrompt(topic, difficulty, count))
	if err != nil {
		return nil, err
	}
	return ParseScenario(text, count)
}

func (g *Gemini) Evaluate(ctx context.Context, req EvaluationRequest) (*Evaluation, error) {
	text, err := g.complete(ctx, evaluationPrompt(req))
	if err != nil {
		return nil, err
	}
	return ParseEvaluation(text)
}
