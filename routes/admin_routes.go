package routes

import (
	"github.com/anjiri1684/interview_prepper/handlers"
	"github.com/anjiri1684/interview_prepper/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *handlers.Handler, adminKeyHash string) {
	admin := app.Group("/api/admin", middleware.AdminKeyRequired(adminKeyHash))

	admin.Post("/quotas/reset", h.ResetAllQuotas)
}
