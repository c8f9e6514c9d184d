package middleware

import (
	"strings"

	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig lists the origins besides loopback that may call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// CORS admits loopback origins (the desktop shell serves from localhost or
// tauri://localhost) and the configured list. Requests without an Origin
// pass untouched.
func CORS(cfg CORSConfig) fiber.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/"); o != "" {
			allowed[o] = true
		}
	}
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if !isLoopback(origin) && !allowed[strings.ToLower(origin)] {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, X-Trace-Id")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Set(fiber.HeaderAccessControlExposeHeaders, traceIDHeader)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func isLoopback(origin string) bool {
	o := strings.ToLower(origin)
	for _, prefix := range []string{"http://localhost", "http://127.0.0.1", "tauri://localhost", "https://tauri.localhost"} {
		if o == prefix || strings.HasPrefix(o, prefix+":") || strings.HasPrefix(o, prefix+"/") {
			return true
		}
	}
	return false
}
