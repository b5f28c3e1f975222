package generator

import (
	"encoding/json"
	"fmt"

	"github.com/anjiri1684/interview_prepper/models"
)

const persona = "Act as a senior Data & AI hiring manager with experience interviewing for data science, machine learning, data engineering, MLOps and generative AI roles."

func difficultyGuide(difficulty string) string {
	switch difficulty {
	case models.DifficultyEasy:
		return "Basic concepts and definitions"
	case models.DifficultyMedium:
		return "Intermediate application and analysis"
	default:
		return "Advanced problem-solving and complex scenarios"
	}
}

func mcqPrompt(topic, difficulty string, count int) string {
	return fmt.Sprintf(`%s
Generate %d multiple choice interview questions on the topic of %q at %s level (%s).

Return ONLY a JSON array with exactly %d objects. Each object has:
- "title": the question text
- "options": an array of exactly 4 plausible answer strings
- "correct_answer_id": the integer index (0-3) of the correct option
- "explaination": why the correct option is right and the others are not

Example:
[{"title": "...", "options": ["...", "...", "...", "..."], "correct_answer_id": 2, "explaination": "..."}]`,
		persona, count, topic, difficulty, difficultyGuide(difficulty), count)
}

func scenarioPrompt(topic, difficulty string, count int) string {
	return fmt.Sprintf(`%s
Create one realistic interview scenario about %q at %s level (%s).

Return ONLY a JSON object with exactly these fields:
- "title": the scenario context (role, company, constraints)
- "questions": an array of exactly %d objects, each with "prompt" and "explanation" (key points a good answer covers)
- "correct_answer": a model answer for the whole scenario
- "explanation": the scoring rubric for the scenario`,
		persona, topic, difficulty, difficultyGuide(difficulty), count)
}

func evaluationPrompt(req EvaluationRequest) string {
	questions, err := json.Marshal(req.Questions)
	if err != nil {
		questions = []byte("[]")
	}
	return fmt.Sprintf(`%s
Evaluate the candidate's answer to question %d of the scenario below.

SCENARIO TITLE:
%s

QUESTIONS ASKED:
%s

CANDIDATE ANSWER:
%s

REFERENCE ANSWER:
%s

Weigh technical accuracy 40%%, problem-solving 30%%, practical and business impact 20%%, communication 10%%.
Return ONLY a JSON object with exactly these fields:
- "score": integer 0-100
- "feedback": strengths first, then specific improvements
- "correct_answer": a polished model answer to the question`,
		persona, req.QuestionIndex+1, req.ScenarioTitle, questions, req.UserAnswer, req.ReferenceAnswer)
}
