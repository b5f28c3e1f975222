package routes

import (
	"github.com/anjiri1684/interview_prepper/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PublicRoutes registers the unauthenticated endpoints. Webhook requests
// authenticate with their Svix signature instead of a bearer token.
func PublicRoutes(app *fiber.App, h *handlers.Handler, appName string, gatherer prometheus.Gatherer) {
	app.Get("/", handlers.Welcome(appName))
	app.Get("/health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	webhooks := app.Group("/webhooks")
	webhooks.Post("/clerk", h.ClerkWebhook)
}
