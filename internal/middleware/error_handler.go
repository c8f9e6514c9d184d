package middleware

import (
	"remate/internal/interfaces/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Errors returned by handlers are
// mapped to statuses the same way handlers map them themselves.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := httperr.Status(err)
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
	}
	return httperr.Respond(c, err)
}
