package handlers

import (
	"github.com/anjiri1684/interview_prepper/middleware"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultInterviewQuestions = 5
	defaultScenarioQuestions  = 3
)

type GenerateChallengeRequest struct {
	Difficulty   string `json:"difficulty" validate:"required"`
	Topic        string `json:"topic" validate:"required"`
	NumQuestions *int   `json:"num_questions"`
}

func parseGenerateRequest(c *fiber.Ctx, defaultCount int) (*GenerateChallengeRequest, int, error) {
	var req GenerateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, 0, badRequest("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return nil, 0, badRequest(err.Error())
	}
	count := defaultCount
	if req.NumQuestions != nil {
		count = *req.NumQuestions
	}
	return &req, count, nil
}

func (h *Handler) GenerateInterviewChallenge(c *fiber.Ctx) error {
	req, count, err := parseGenerateRequest(c, defaultInterviewQuestions)
	if err != nil {
		return err
	}

	result, err := h.prep.GenerateInterview(c.UserContext(), middleware.UserID(c), req.Difficulty, req.Topic, count)
	if err != nil {
		return toFiberError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) GenerateScenarioChallenge(c *fiber.Ctx) error {
	req, count, err := parseGenerateRequest(c, defaultScenarioQuestions)
	if err != nil {
		return err
	}

	result, err := h.prep.GenerateScenario(c.UserContext(), middleware.UserID(c), req.Difficulty, req.Topic, count)
	if err != nil {
		return toFiberError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) GetHistory(c *fiber.Ctx) error {
	history, err := h.prep.History(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(history)
}
