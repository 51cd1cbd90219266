package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status, latencia y el
// usuario autenticado cuando lo hay. Respuestas 4xx salen como warn y 5xx como
// error para facilitar el filtrado.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		evt := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = log.Error()
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if userID := GetUserID(c); userID != "" {
			evt.Str("user_id", userID)
		}
		evt.Msg("request")
		return err
	}
}
