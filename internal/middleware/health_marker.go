package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"remate/internal/application/health"
	"remate/internal/interfaces/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// HealthMarker counts API requests in Redis (skipping /, /health* and
// favicon). A nil client disables it.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if rdb == nil || path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq, _ := json.Marshal(map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		ctx := context.Background()
		_, _ = rdb.Set(ctx, health.KeyLastReq, lastReq, 0).Result()
		_, _ = rdb.Incr(ctx, health.KeyReqTotal).Result()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = httperr.Status(err)
		}
		_, _ = rdb.Incr(ctx, health.KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, health.KeyResTime, float64(time.Since(start).Milliseconds())).Result()
		if status >= fiber.StatusInternalServerError {
			_, _ = rdb.Incr(ctx, health.KeyReqErrors).Result()
		}
		return err
	}
}
