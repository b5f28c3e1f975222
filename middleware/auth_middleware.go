package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const userIDKey = "user_id"

// Protected validates Clerk session tokens (RS256) against pemKey. The
// subject claim becomes the user id. When authorizedParties is not empty
// an azp claim, if present, must be one of them.
func Protected(pemKey string, authorizedParties []string) (fiber.Handler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(strings.ReplaceAll(pemKey, `\n`, "\n")))
	if err != nil {
		return nil, fmt.Errorf("parsing clerk public key: %w", err)
	}

	return jwtware.New(jwtware.Config{
		SigningKey:    key,
		SigningMethod: jwt.SigningMethodRS256.Alg(),
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals("user").(*jwt.Token)
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
			}

			if azp, ok := claims["azp"].(string); ok && azp != "" && len(authorizedParties) > 0 {
				if !contains(authorizedParties, azp) {
					return fiber.NewError(fiber.StatusUnauthorized, "Token was issued for an unauthorized party")
				}
			}

			sub, _ := claims["sub"].(string)
			if strings.TrimSpace(sub) == "" {
				return fiber.NewError(fiber.StatusUnauthorized, "Token has no subject")
			}
			c.Locals(userIDKey, sub)
			return c.Next()
		},
	}), nil
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "missing or malformed JWT") {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing or malformed JWT")
	}
	return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired JWT")
}

// UserID returns the id stored by Protected, or "" on unprotected routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// SetUserID stores id the way Protected does.
func SetUserID(c *fiber.Ctx, id string) {
	c.Locals(userIDKey, id)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
