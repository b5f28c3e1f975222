package routes

import (
	"github.com/anjiri1684/interview_prepper/handlers"
	"github.com/gofiber/fiber/v2"
)

func QuotaRoutes(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	api := app.Group("/api")

	quotas := api.Group("/quotas", auth)
	quotas.Post("/initialize", h.InitializeQuotas)
	quotas.Get("", h.GetQuotas)
	quotas.Get("/:challengeType", h.GetQuota)
}
