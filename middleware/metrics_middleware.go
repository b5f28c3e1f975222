package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/anjiri1684/interview_prepper/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics counts requests and observes latency per matched route. The
// status of a returned error is taken from the fiber.Error when there is
// one, since the error handler has not written the response yet.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		m.RequestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
