package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	healthsvc "remate/internal/application/health"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okDB struct{}

func (okDB) PingContext(context.Context) error { return nil }

func setupHealthTest(t *testing.T, withRedis bool) (*fiber.App, *miniredis.Miniredis) {
	h := &Handlers{DB: okDB{}, HealthAdminKey: "secret"}
	var mr *miniredis.Miniredis
	if withRedis {
		mr = miniredis.RunT(t)
		h.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = h.Rdb.Close() })
	}
	app := fiber.New()
	app.Get("/health/json", h.JSON)
	app.Post("/health/reset", h.Reset)
	return app, mr
}

func get(t *testing.T, app *fiber.App, method, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestJSON(t *testing.T) {
	app, mr := setupHealthTest(t, true)
	mr.Set(healthsvc.KeyReqTotal, "4")
	mr.Set(healthsvc.KeyReqErrors, "1")

	code, out := get(t, app, "GET", "/health/json")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "remate", out["service"])
	assert.Equal(t, "ok", out["status"])
	traffic := out["traffic"].(map[string]interface{})
	assert.EqualValues(t, 4, traffic["totalRequests"])
	assert.Equal(t, "75.0", traffic["successRate"])
}

func TestJSON_WithoutRedis(t *testing.T) {
	app, _ := setupHealthTest(t, false)
	code, out := get(t, app, "GET", "/health/json")
	require.Equal(t, fiber.StatusOK, code)
	deps := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "disabled", deps["redis"].(map[string]interface{})["status"])
}

func TestReset(t *testing.T) {
	app, mr := setupHealthTest(t, true)
	mr.Set(healthsvc.KeyReqTotal, "9")

	code, _ := get(t, app, "POST", "/health/reset?key=wrong")
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.True(t, mr.Exists(healthsvc.KeyReqTotal))

	code, _ = get(t, app, "POST", "/health/reset?key=secret")
	require.Equal(t, fiber.StatusOK, code)
	assert.False(t, mr.Exists(healthsvc.KeyReqTotal))
	assert.True(t, mr.Exists(healthsvc.KeyStartTime))

	app, _ = setupHealthTest(t, false)
	code, _ = get(t, app, "POST", "/health/reset?key=secret")
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
}
