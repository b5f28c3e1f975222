package routes

import (
	"github.com/anjiri1684/interview_prepper/handlers"
	"github.com/gofiber/fiber/v2"
)

func AnswerRoutes(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	api := app.Group("/api")

	scenario := api.Group("/scenario-answers", auth)
	scenario.Post("", h.SubmitScenarioAnswer)
	scenario.Get("", h.ListScenarioAnswers)
	scenario.Get("/:answerId", h.GetScenarioAnswer)
	scenario.Post("/:answerId/evaluate", h.EvaluateScenarioAnswer)

	api.Post("/interview-answers", auth, h.SubmitInterviewAnswer)
}
