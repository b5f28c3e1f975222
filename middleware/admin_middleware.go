package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKeyRequired compares the X-Admin-Key header with a bcrypt hash. An
// empty hash turns the admin endpoints off.
func AdminKeyRequired(hash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hash == "" {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden: Admin access is disabled")
		}

		key := c.Get(AdminKeyHeader)
		if key == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing admin key")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden: Admin access required")
		}
		return c.Next()
	}
}
