package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"storerating/internal/metrics"
)

// Metrics records request latency labelled by route pattern. Errors are
// rendered here so the recorded status matches the response.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		metrics.RequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(c.Response().StatusCode())).
			Observe(time.Since(start).Seconds())
		return nil
	}
}
