package transactions

import (
	txsvc "remate/internal/application/transactions"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *txsvc.Service
}

// GET /api/v1/transactions?auction_id=&client_id=&status=PAYMENT
func (h *Handlers) List(c *fiber.Ctx) error {
	q, err := params.Page(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	page, err := h.Service.List(c.UserContext(), q)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Paged(c, "Transactions fetched successfully", page)
}

// GET /api/v1/transactions/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	t, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Transaction fetched successfully", t, nil)
}

// POST /api/v1/transactions
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in txsvc.Input
	if err := params.Body(c, &in); err != nil {
		return httperr.Respond(c, err)
	}
	t, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.SuccessCreated(c, "Transaction created successfully", t, nil)
}

// PUT /api/v1/transactions/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	var in txsvc.Input
	if err := params.Body(c, &in); err != nil {
		return httperr.Respond(c, err)
	}
	t, err := h.Service.Update(c.UserContext(), id, in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Transaction updated successfully", t, nil)
}

// DELETE /api/v1/transactions/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Transaction deleted successfully", fiber.Map{"id": id}, nil)
}

// POST /api/v1/transactions/:id/restore
func (h *Handlers) Restore(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	t, err := h.Service.Restore(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Transaction restored successfully", t, nil)
}

// DELETE /api/v1/transactions/:id/purge
func (h *Handlers) Purge(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Purge(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Transaction purged successfully", fiber.Map{"id": id}, nil)
}
