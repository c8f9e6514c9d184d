package sales

import (
	salesvc "remate/internal/application/sales"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *salesvc.Service
}

type saleRequest struct {
	AuctionID  uint    `json:"auction_id"`
	BuyerID    uint    `json:"buyer_id"`
	TotalPrice float64 `json:"total_price"`
	Deadline   string  `json:"deadline"`
	BundleIDs  []uint  `json:"bundle_ids"`
}

func readInput(c *fiber.Ctx) (salesvc.Input, error) {
	var req saleRequest
	if err := params.Body(c, &req); err != nil {
		return salesvc.Input{}, err
	}
	deadline, err := params.Date("deadline", req.Deadline)
	if err != nil {
		return salesvc.Input{}, err
	}
	return salesvc.Input{
		AuctionID:  req.AuctionID,
		BuyerID:    req.BuyerID,
		TotalPrice: req.TotalPrice,
		Deadline:   deadline,
		BundleIDs:  req.BundleIDs,
	}, nil
}

// GET /api/v1/sales?auction_id=&client_id=
func (h *Handlers) List(c *fiber.Ctx) error {
	q, err := params.Page(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	page, err := h.Service.List(c.UserContext(), q)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Paged(c, "Sales fetched successfully", page)
}

// GET /api/v1/sales/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	s, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Sale fetched successfully", s, nil)
}

// POST /api/v1/sales
func (h *Handlers) Create(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	s, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.SuccessCreated(c, "Sale created successfully", s, nil)
}

// PUT /api/v1/sales/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	in, err := readInput(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	s, err := h.Service.Update(c.UserContext(), id, in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Sale updated successfully", s, nil)
}

// DELETE /api/v1/sales/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Sale deleted successfully", fiber.Map{"id": id}, nil)
}

// POST /api/v1/sales/:id/restore
func (h *Handlers) Restore(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	s, err := h.Service.Restore(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Sale restored successfully", s, nil)
}

// DELETE /api/v1/sales/:id/purge
func (h *Handlers) Purge(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Purge(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Sale purged successfully", fiber.Map{"id": id}, nil)
}
