package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

const headerRequestID = "X-Request-ID"

// RequestLogger asigna X-Request-ID y registra método, ruta, status y duración de cada petición.
// Los errores de la cadena se resuelven aquí con el ErrorHandler de la app para loguear el status final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(headerRequestID, requestID)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", requestID).
			Msg("petición HTTP")
		return nil
	}
}
