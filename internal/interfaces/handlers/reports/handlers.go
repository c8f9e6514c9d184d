package reports

import (
	reportsvc "remate/internal/application/reports"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *reportsvc.Service
}

// GET /api/v1/reports/auctions/:id/bundles
func (h *Handlers) AuctionBundles(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	rows, err := h.Service.AuctionBundles(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction bundles fetched successfully", rows, nil)
}

// GET /api/v1/reports/auctions/:id/balances
func (h *Handlers) AuctionBalances(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	q, err := params.Page(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	page, err := h.Service.AuctionClientBalances(c.UserContext(), id, q)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Paged(c, "Client balances fetched successfully", page)
}

// GET /api/v1/reports/auctions/:id/summary
func (h *Handlers) AuctionSummary(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	sum, err := h.Service.AuctionSummary(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction summary fetched successfully", sum, nil)
}

// GET /api/v1/reports/auctions/:id/clients/:clientId/purchases
func (h *Handlers) ClientPurchases(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	clientID, err := params.ID(c, "clientId")
	if err != nil {
		return httperr.Respond(c, err)
	}
	rows, err := h.Service.ClientPurchases(c.UserContext(), id, clientID)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Client purchases fetched successfully", rows, nil)
}

// GET /api/v1/reports/auctions/:id/sellers/:sellerId/sales
func (h *Handlers) SellerSales(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	sellerID, err := params.ID(c, "sellerId")
	if err != nil {
		return httperr.Respond(c, err)
	}
	rows, err := h.Service.SellerSales(c.UserContext(), id, sellerID)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Seller sales fetched successfully", rows, nil)
}
