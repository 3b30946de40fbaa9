package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ai/internal/infrastructure/observability"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

const headerRequestID = "X-Request-ID"

// RequestLogger registra cada petición y propaga X-Request-ID (lo genera si no viene).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(headerRequestID, reqID)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status.
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Str("role", GetRole(c)).
			Msg("http request")
		return nil
	}
}

// Metrics observa la duración por método, ruta registrada y status.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		// Path de la ruta registrada ("/api/items/:id"), no la URL: cardinalidad acotada.
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		observability.HTTPRequestDuration.
			WithLabelValues(c.Method(), route, strconv.Itoa(c.Response().StatusCode())).
			Observe(time.Since(start).Seconds())
		return err
	}
}
