package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ClerkWebhook provisions quota rows when Clerk reports a new user. Other
// event types are acknowledged and ignored.
func (h *Handler) ClerkWebhook(c *fiber.Ctx) error {
	if h.webhook == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "CLERK_WEBHOOK_SECRET is not set")
	}

	payload := c.Body()
	headers := http.Header{}
	c.Request().Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})
	if err := h.webhook.Verify(payload, headers); err != nil {
		h.log.WithError(err).Warn("Rejected Clerk webhook")
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid webhook signature")
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid JSON payload")
	}
	if event.Type != "user.created" {
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	userID := strings.TrimSpace(event.Data.ID)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid webhook payload: missing user ID")
	}

	if err := h.prep.ProvisionUser(c.UserContext(), userID); err != nil {
		return toFiberError(err)
	}
	h.log.WithField("user_id", userID).Info("Provisioned quotas for new user")
	return c.JSON(fiber.Map{"status": "success", "user_id": userID})
}
