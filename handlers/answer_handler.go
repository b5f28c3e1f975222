package handlers

import (
	"github.com/anjiri1684/interview_prepper/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ScenarioAnswerRequest struct {
	ScenarioID    string `json:"scenario_id" validate:"required"`
	QuestionIndex *int   `json:"question_index" validate:"required"`
	UserAnswer    string `json:"user_answer" validate:"required"`
}

type InterviewAnswerRequest struct {
	ChallengeID      string `json:"challenge_id" validate:"required"`
	UserAnswerID     *int   `json:"user_answer_id" validate:"required"`
	TimeTakenSeconds *int   `json:"time_taken_seconds"`
}

func parseID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest("Invalid " + name)
	}
	return id, nil
}

func (h *Handler) SubmitScenarioAnswer(c *fiber.Ctx) error {
	var req ScenarioAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(err.Error())
	}

	scenarioID, err := parseID(req.ScenarioID, "scenario_id")
	if err != nil {
		return err
	}

	result, err := h.prep.SubmitScenarioAnswer(c.UserContext(), middleware.UserID(c),
		scenarioID, *req.QuestionIndex, req.UserAnswer)
	if err != nil {
		return toFiberError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) ListScenarioAnswers(c *fiber.Ctx) error {
	var scenarioID *uuid.UUID
	if raw := c.Query("scenario_id"); raw != "" {
		id, err := parseID(raw, "scenario_id")
		if err != nil {
			return err
		}
		scenarioID = &id
	}

	answers, err := h.prep.ScenarioAnswers(c.UserContext(), middleware.UserID(c), scenarioID)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{"answers": answers, "count": len(answers)})
}

func (h *Handler) GetScenarioAnswer(c *fiber.Ctx) error {
	id, err := parseID(c.Params("answerId"), "answer id")
	if err != nil {
		return err
	}

	answer, err := h.prep.ScenarioAnswer(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(answer)
}

// EvaluateScenarioAnswer retries grading for an answer whose first
// evaluation failed.
func (h *Handler) EvaluateScenarioAnswer(c *fiber.Ctx) error {
	id, err := parseID(c.Params("answerId"), "answer id")
	if err != nil {
		return err
	}

	result, err := h.prep.EvaluateAnswer(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(result)
}

func (h *Handler) SubmitInterviewAnswer(c *fiber.Ctx) error {
	var req InterviewAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(err.Error())
	}

	challengeID, err := parseID(req.ChallengeID, "challenge_id")
	if err != nil {
		return err
	}

	answer, err := h.prep.SubmitInterviewAnswer(c.UserContext(), middleware.UserID(c),
		challengeID, *req.UserAnswerID, req.TimeTakenSeconds)
	if err != nil {
		return toFiberError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}
