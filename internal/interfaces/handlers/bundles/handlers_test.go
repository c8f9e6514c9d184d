package bundles

import (
	"testing"

	bundlesvc "remate/internal/application/bundles"
	"remate/internal/domain"
	"remate/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleEndpoints(t *testing.T) {
	db := testutil.OpenStore(t)
	a := testutil.Auction(t, db, "Remate")
	seller := testutil.Client(t, db, "Vendedor")
	h := &Handlers{Service: &bundlesvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/bundles", h.List)
	app.Post("/bundles", h.Create)
	app.Get("/bundles/:id", h.Get)
	app.Put("/bundles/:id", h.Update)
	app.Delete("/bundles/:id", h.Delete)
	app.Post("/bundles/:id/restore", h.Restore)
	app.Delete("/bundles/:id/purge", h.Purge)

	in := map[string]interface{}{"number": 201, "name": "Sembradora", "seller_id": seller.ID, "auction_id": a.ID}
	code, env := testutil.Do(t, app, "POST", "/bundles", in)
	require.Equal(t, fiber.StatusCreated, code)
	var b domain.Bundle
	env.Decode(t, &b)
	assert.Equal(t, domain.BundleForSale, b.Status)

	code, env = testutil.Do(t, app, "POST", "/bundles", in)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "bundle.number, bundle.auction_id", env.Error.Details["constraint"])

	in["seller_id"] = 999
	in["number"] = 202
	code, env = testutil.Do(t, app, "POST", "/bundles", in)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "foreign_key", env.Error.Details["kind"])

	in["seller_id"] = seller.ID
	in["name"] = "Sembradora neumática"
	code, env = testutil.Do(t, app, "PUT", "/bundles/1", in)
	require.Equal(t, fiber.StatusOK, code)
	env.Decode(t, &b)
	assert.Equal(t, 202, b.Number)

	code, env = testutil.Do(t, app, "GET", "/bundles?auction_id=1&status=for_sale", nil)
	require.Equal(t, fiber.StatusOK, code)
	page := testutil.Page[domain.Bundle](t, env)
	require.Len(t, page.Items, 1)

	code, _ = testutil.Do(t, app, "DELETE", "/bundles/1", nil)
	require.Equal(t, fiber.StatusOK, code)
	code, _ = testutil.Do(t, app, "POST", "/bundles/1/restore", nil)
	require.Equal(t, fiber.StatusOK, code)
	code, _ = testutil.Do(t, app, "DELETE", "/bundles/1/purge", nil)
	assert.Equal(t, fiber.StatusConflict, code)
	code, _ = testutil.Do(t, app, "GET", "/bundles/1", nil)
	assert.Equal(t, fiber.StatusOK, code)
}
