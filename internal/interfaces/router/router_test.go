package router

import (
	"context"
	"net/http/httptest"
	"testing"

	"remate/internal/application/health"
	"remate/internal/application/reports"
	"remate/internal/domain"
	"remate/internal/infrastructure/migrations"
	"remate/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *miniredis.Miniredis) {
	db := testutil.OpenStore(t)
	engine, err := migrations.NewEngine(db, migrations.Chain())
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	app := CreateApp(Deps{
		DB:             db,
		Rdb:            rdb,
		Schema:         engine,
		HealthAdminKey: "secret",
		AllowedOrigins: []string{"https://remate.example.com"},
	})
	return app, mr
}

func TestAuctionFlow(t *testing.T) {
	app, mr := setupApp(t)

	code, env := testutil.Do(t, app, "POST", "/api/v1/clients", map[string]string{"company": "Vendedor SA", "province": "Córdoba", "city": "Marcos Juárez"})
	require.Equal(t, fiber.StatusCreated, code, env.Error.Message)
	code, _ = testutil.Do(t, app, "POST", "/api/v1/clients", map[string]string{"company": "Comprador SRL", "province": "Santa Fe", "city": "Venado Tuerto"})
	require.Equal(t, fiber.StatusCreated, code)

	code, _ = testutil.Do(t, app, "POST", "/api/v1/auctions", map[string]string{"name": "Remate de otoño", "province": "Córdoba", "city": "Marcos Juárez", "date": "2024-04-20"})
	require.Equal(t, fiber.StatusCreated, code)
	code, _ = testutil.Do(t, app, "POST", "/api/v1/bundles", map[string]interface{}{"number": 201, "name": "Tractor", "seller_id": 1, "auction_id": 1})
	require.Equal(t, fiber.StatusCreated, code)
	code, _ = testutil.Do(t, app, "POST", "/api/v1/auctions/1/actions/start", nil)
	require.Equal(t, fiber.StatusOK, code)

	code, env = testutil.Do(t, app, "POST", "/api/v1/sales", map[string]interface{}{
		"auction_id": 1, "buyer_id": 2, "total_price": 1000.0, "deadline": "2024-05-20", "bundle_ids": []uint{1},
	})
	require.Equal(t, fiber.StatusCreated, code, env.Error.Message)

	code, env = testutil.Do(t, app, "GET", "/api/v1/bundles?status=SOLD", nil)
	require.Equal(t, fiber.StatusOK, code)
	bundles := testutil.Page[domain.Bundle](t, env)
	require.Len(t, bundles.Items, 1)
	assert.Equal(t, domain.BundleSold, bundles.Items[0].Status)

	code, env = testutil.Do(t, app, "GET", "/api/v1/reports/auctions/1/summary", nil)
	require.Equal(t, fiber.StatusOK, code)
	var sum reports.Summary
	env.Decode(t, &sum)
	assert.Equal(t, 200.0, sum.TotalEarned)

	code, env = testutil.Do(t, app, "GET", "/api/v1/auctions/1/sellers", nil)
	require.Equal(t, fiber.StatusOK, code)
	var sellers []domain.Client
	env.Decode(t, &sellers)
	require.Len(t, sellers, 1)
	assert.Equal(t, "Vendedor SA", sellers[0].Company)

	code, _ = testutil.Do(t, app, "POST", "/api/v1/auctions/1/actions/start", nil)
	assert.Equal(t, fiber.StatusConflict, code)

	total, err := mr.Get(health.KeyReqTotal)
	require.NoError(t, err)
	assert.Equal(t, "10", total)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := setupApp(t)
	code, env := testutil.Do(t, app, "GET", "/api/v1/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "error", env.Status)
}

func TestCORS(t *testing.T) {
	app, _ := setupApp(t)
	for origin, want := range map[string]int{
		"http://localhost:1420":      fiber.StatusOK,
		"tauri://localhost":          fiber.StatusOK,
		"https://remate.example.com": fiber.StatusOK,
		"https://evil.example.com":   fiber.StatusForbidden,
	} {
		req := httptest.NewRequest("GET", "/api/v1/provinces", nil)
		req.Header.Set("Origin", origin)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, origin)
	}
}

func TestHealth(t *testing.T) {
	app, _ := setupApp(t)
	req := httptest.NewRequest("GET", "/health/json", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
}

func TestGormDBPinger(t *testing.T) {
	p := &gormDBPinger{db: testutil.OpenStore(t)}
	assert.NoError(t, p.PingContext(context.Background()))
}
