package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/user-service/internal/api/dto"
	"github.com/behnamfe76/user-service/internal/observability"
)

// Root handles GET /.
func Root(c *fiber.Ctx) error {
	return c.JSON(dto.Message{Message: "Olá mundo!"})
}

// MetricsHandler exposes in-process counters.
func MetricsHandler(metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(metrics.Snapshot())
	}
}
