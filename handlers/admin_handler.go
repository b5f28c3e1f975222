package handlers

import "github.com/gofiber/fiber/v2"

func (h *Handler) ResetAllQuotas(c *fiber.Ctx) error {
	affected, err := h.prep.ResetAllQuotas(c.UserContext())
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{"status": "success", "quotas_reset": affected})
}
