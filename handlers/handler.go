package handlers

import (
	"errors"
	"net/http"

	"github.com/anjiri1684/interview_prepper/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// WebhookVerifier checks the signature headers of an incoming webhook.
// *svix.Webhook satisfies it.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

type Handler struct {
	prep    *services.PrepService
	webhook WebhookVerifier
	log     *logrus.Entry
}

// New wires the handlers. webhook may be nil, in which case the Clerk
// webhook endpoint answers 500.
func New(prep *services.PrepService, webhook WebhookVerifier, log *logrus.Entry) *Handler {
	return &Handler{prep: prep, webhook: webhook, log: log}
}

// toFiberError maps service and generator failures to HTTP statuses.
func toFiberError(err error) *fiber.Error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}

	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrQuotaExhausted):
		code = fiber.StatusTooManyRequests
	}
	return fiber.NewError(code, err.Error())
}

func badRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

// ErrorHandler renders every error as {"status":"error","code":..,"message":..}.
func ErrorHandler(log *logrus.Entry) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		fe := toFiberError(err)

		entry := log.WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"code":   fe.Code,
		})
		if fe.Code >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("Request failed")
		} else {
			entry.Debug(fe.Message)
		}

		return c.Status(fe.Code).JSON(fiber.Map{
			"status":  "error",
			"code":    fe.Code,
			"message": fe.Message,
		})
	}
}
