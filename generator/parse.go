package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/anjiri1684/interview_prepper/models"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedOutput, fmt.Sprintf(format, args...))
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// rawMCQ accepts the misspelled "explaination" key that the MCQ prompt has
// always asked for, alongside the correct spelling.
type rawMCQ struct {
	Title           string   `json:"title"`
	Options         []string `json:"options"`
	CorrectAnswerID *int     `json:"correct_answer_id"`
	Explanation     string   `json:"explanation"`
	Explaination    string   `json:"explaination"`
}

func ParseMCQs(raw string, count int) ([]MCQ, error) {
	text := stripFences(raw)

	var items []rawMCQ
	if strings.HasPrefix(text, "{") {
		var wrapped struct {
			Questions []rawMCQ `json:"questions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, malformed("decoding questions object: %v", err)
		}
		items = wrapped.Questions
	} else if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, malformed("decoding questions array: %v", err)
	}

	if len(items) != count {
		return nil, malformed("expected %d questions, got %d", count, len(items))
	}

	out := make([]MCQ, 0, len(items))
	for i, item := range items {
		explanation := item.Explanation
		if explanation == "" {
			explanation = item.Explaination
		}
		switch {
		case strings.TrimSpace(item.Title) == "":
			return nil, malformed("question %d has no title", i)
		case len(item.Options) != models.OptionsPerQuestion:
			return nil, malformed("question %d has %d options, expected %d", i, len(item.Options), models.OptionsPerQuestion)
		case item.CorrectAnswerID == nil:
			return nil, malformed("question %d has no correct_answer_id", i)
		case *item.CorrectAnswerID < 0 || *item.CorrectAnswerID >= models.OptionsPerQuestion:
			return nil, malformed("question %d has correct_answer_id %d", i, *item.CorrectAnswerID)
		case strings.TrimSpace(explanation) == "":
			return nil, malformed("question %d has no explanation", i)
		}
		for j, opt := range item.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, malformed("question %d option %d is empty", i, j)
			}
		}
		out = append(out, MCQ{
			Title:           item.Title,
			Options:         item.Options,
			CorrectAnswerID: *item.CorrectAnswerID,
			Explanation:     explanation,
		})
	}
	return out, nil
}

func ParseScenario(raw string, count int) (*Scenario, error) {
	var scenario Scenario
	if err := json.Unmarshal([]byte(stripFences(raw)), &scenario); err != nil {
		return nil, malformed("decoding scenario: %v", err)
	}
	if strings.TrimSpace(scenario.Title) == "" {
		return nil, malformed("scenario has no title")
	}
	if len(scenario.Questions) != count {
		return nil, malformed("expected %d scenario questions, got %d", count, len(scenario.Questions))
	}
	for i, q := range scenario.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, malformed("scenario question %d has no prompt", i)
		}
	}
	return &scenario, nil
}

func ParseEvaluation(raw string) (*Evaluation, error) {
	var decoded struct {
		Score         *json.Number `json:"score"`
		Feedback      string       `json:"feedback"`
		CorrectAnswer string       `json:"correct_answer"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(stripFences(raw))))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, malformed("decoding evaluation: %v", err)
	}
	if decoded.Score == nil {
		return nil, malformed("evaluation has no score")
	}
	f, err := decoded.Score.Float64()
	if err != nil {
		return nil, malformed("evaluation score %q is not a number", decoded.Score.String())
	}
	score := int(math.Round(f))
	if score < 0 || score > 100 {
		return nil, malformed("evaluation score %d is outside 0-100", score)
	}
	if strings.TrimSpace(decoded.Feedback) == "" {
		return nil, malformed("evaluation has no feedback")
	}
	return &Evaluation{
		Score:         score,
		Feedback:      decoded.Feedback,
		CorrectAnswer: decoded.CorrectAnswer,
	}, nil
}
