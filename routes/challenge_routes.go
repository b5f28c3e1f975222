package routes

import (
	"github.com/anjiri1684/interview_prepper/handlers"
	"github.com/gofiber/fiber/v2"
)

func ChallengeRoutes(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	api := app.Group("/api")

	challenges := api.Group("/challenges", auth)
	challenges.Post("/interview", h.GenerateInterviewChallenge)
	challenges.Post("/scenario", h.GenerateScenarioChallenge)
	challenges.Get("/history", h.GetHistory)
}
