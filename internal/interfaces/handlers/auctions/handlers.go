package auctions

import (
	auctionsvc "remate/internal/application/auctions"
	"remate/internal/domain"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *auctionsvc.Service
}

type auctionRequest struct {
	Name     string `json:"name"`
	Province string `json:"province"`
	City     string `json:"city"`
	Date     string `json:"date"`
}

func (r auctionRequest) input() (auctionsvc.Input, error) {
	date, err := params.Date("date", r.Date)
	if err != nil {
		return auctionsvc.Input{}, err
	}
	return auctionsvc.Input{Name: r.Name, Province: r.Province, City: r.City, Date: date}, nil
}

func readInput(c *fiber.Ctx) (auctionsvc.Input, error) {
	var req auctionRequest
	if err := params.Body(c, &req); err != nil {
		return auctionsvc.Input{}, err
	}
	return req.input()
}

// GET /api/v1/auctions
func (h *Handlers) List(c *fiber.Ctx) error {
	q, err := params.Page(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	page, err := h.Service.List(c.UserContext(), q)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Paged(c, "Auctions fetched successfully", page)
}

// GET /api/v1/auctions/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	a, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction fetched successfully", a, nil)
}

// POST /api/v1/auctions
func (h *Handlers) Create(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	a, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.SuccessCreated(c, "Auction created successfully", a, nil)
}

// PUT /api/v1/auctions/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	in, err := readInput(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	a, err := h.Service.Update(c.UserContext(), id, in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction updated successfully", a, nil)
}

// POST /api/v1/auctions/:id/actions/:action (start, finish, cancel, restore)
func (h *Handlers) Transition(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	action, err := auctionsvc.ParseAction(c.Params("action"))
	if err != nil {
		return httperr.Respond(c, err)
	}
	a, err := h.Service.Transition(c.UserContext(), id, action)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction status updated successfully", a, nil)
}

// PUT /api/v1/auctions/:id/status writes any status of the vocabulary,
// bypassing the lifecycle policy.
func (h *Handlers) SetStatus(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := params.Body(c, &req); err != nil {
		return httperr.Respond(c, err)
	}
	status, err := domain.ParseAuctionStatus(req.Status)
	if err != nil {
		return httperr.Respond(c, err)
	}
	a, err := h.Service.SetStatus(c.UserContext(), id, status)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction status updated successfully", a, nil)
}

// DELETE /api/v1/auctions/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction deleted successfully", fiber.Map{"id": id}, nil)
}

// POST /api/v1/auctions/:id/undelete
func (h *Handlers) Undelete(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	a, err := h.Service.Undelete(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction restored successfully", a, nil)
}

// DELETE /api/v1/auctions/:id/purge
func (h *Handlers) Purge(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Purge(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Auction purged successfully", fiber.Map{"id": id}, nil)
}
