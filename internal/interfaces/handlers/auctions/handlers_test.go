package auctions

import (
	"testing"

	auctionsvc "remate/internal/application/auctions"
	"remate/internal/domain"
	"remate/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuctionsTest(t *testing.T) *fiber.App {
	h := &Handlers{Service: &auctionsvc.Service{DB: testutil.OpenStore(t)}}
	app := fiber.New()
	app.Get("/auctions", h.List)
	app.Post("/auctions", h.Create)
	app.Get("/auctions/:id", h.Get)
	app.Put("/auctions/:id", h.Update)
	app.Post("/auctions/:id/actions/:action", h.Transition)
	app.Put("/auctions/:id/status", h.SetStatus)
	app.Delete("/auctions/:id", h.Delete)
	app.Post("/auctions/:id/undelete", h.Undelete)
	app.Delete("/auctions/:id/purge", h.Purge)
	return app
}

var auctionBody = map[string]string{
	"name": "Remate de Otoño", "province": "Córdoba", "city": "Marcos Juárez", "date": "2024-04-12",
}

func TestCreateAuction_DefaultsPending(t *testing.T) {
	app := setupAuctionsTest(t)
	code, env := testutil.Do(t, app, "POST", "/auctions", auctionBody)
	require.Equal(t, fiber.StatusCreated, code)
	var a domain.Auction
	env.Decode(t, &a)
	assert.Equal(t, domain.AuctionPending, a.Status)
}

func TestCreateAuction_BadDate(t *testing.T) {
	app := setupAuctionsTest(t)
	bad := map[string]string{"name": "X", "province": "Córdoba", "city": "Y", "date": "12/04/2024"}
	code, env := testutil.Do(t, app, "POST", "/auctions", bad)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "date", env.Error.Details["field"])
}

func TestTransitions(t *testing.T) {
	app := setupAuctionsTest(t)
	testutil.Do(t, app, "POST", "/auctions", auctionBody)

	code, env := testutil.Do(t, app, "POST", "/auctions/1/actions/finish", nil)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "PENDING", env.Error.Details["from"])

	code, env = testutil.Do(t, app, "POST", "/auctions/1/actions/start", nil)
	require.Equal(t, fiber.StatusOK, code)
	var a domain.Auction
	env.Decode(t, &a)
	assert.Equal(t, domain.AuctionInProgress, a.Status)

	code, _ = testutil.Do(t, app, "POST", "/auctions/1/actions/pause", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestSetStatus(t *testing.T) {
	app := setupAuctionsTest(t)
	testutil.Do(t, app, "POST", "/auctions", auctionBody)

	code, env := testutil.Do(t, app, "PUT", "/auctions/1/status", map[string]string{"status": "finished"})
	require.Equal(t, fiber.StatusOK, code)
	var a domain.Auction
	env.Decode(t, &a)
	assert.Equal(t, domain.AuctionFinished, a.Status)

	code, _ = testutil.Do(t, app, "PUT", "/auctions/1/status", map[string]string{"status": "PAUSED"})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestDeleteUndeletePurge(t *testing.T) {
	app := setupAuctionsTest(t)
	testutil.Do(t, app, "POST", "/auctions", auctionBody)

	code, _ := testutil.Do(t, app, "DELETE", "/auctions/1", nil)
	require.Equal(t, fiber.StatusOK, code)
	code, _ = testutil.Do(t, app, "GET", "/auctions/1", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = testutil.Do(t, app, "POST", "/auctions/1/undelete", nil)
	require.Equal(t, fiber.StatusOK, code)

	code, env := testutil.Do(t, app, "GET", "/auctions?status=PENDING", nil)
	require.Equal(t, fiber.StatusOK, code)
	page := testutil.Page[domain.Auction](t, env)
	assert.EqualValues(t, 1, page.Total)

	code, _ = testutil.Do(t, app, "DELETE", "/auctions/1", nil)
	require.Equal(t, fiber.StatusOK, code)
	code, _ = testutil.Do(t, app, "DELETE", "/auctions/1/purge", nil)
	assert.Equal(t, fiber.StatusOK, code)
}
