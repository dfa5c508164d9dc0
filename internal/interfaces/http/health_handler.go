package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia cuya disponibilidad reporta /health (pgxpool.Pool la cumple).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func Health(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service, "db": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
