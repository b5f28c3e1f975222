package handlers

import (
	"github.com/anjiri1684/interview_prepper/middleware"
	"github.com/gofiber/fiber/v2"
)

// InitializeQuotas is the call clients make on first visit.
func (h *Handler) InitializeQuotas(c *fiber.Ctx) error {
	summary, err := h.prep.InitializeQuotas(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

func (h *Handler) GetQuotas(c *fiber.Ctx) error {
	summary, err := h.prep.QuotaSnapshot(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(summary)
}

func (h *Handler) GetQuota(c *fiber.Ctx) error {
	view, err := h.prep.Quota(c.UserContext(), middleware.UserID(c), c.Params("challengeType"))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(view)
}
