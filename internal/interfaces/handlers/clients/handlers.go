package clients

import (
	clientsvc "remate/internal/application/clients"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *clientsvc.Service
}

// GET /api/v1/clients
func (h *Handlers) List(c *fiber.Ctx) error {
	q, err := params.Page(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	page, err := h.Service.List(c.UserContext(), q)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Paged(c, "Clients fetched successfully", page)
}

// GET /api/v1/clients/search?q=&limit=
func (h *Handlers) Search(c *fiber.Ctx) error {
	found, err := h.Service.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", clientsvc.DefaultSearchLimit))
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Clients fetched successfully", found, nil)
}

// GET /api/v1/clients/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	client, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Client fetched successfully", client, nil)
}

// POST /api/v1/clients
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in clientsvc.Input
	if err := params.Body(c, &in); err != nil {
		return httperr.Respond(c, err)
	}
	client, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.SuccessCreated(c, "Client created successfully", client, nil)
}

// PUT /api/v1/clients/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	var in clientsvc.Input
	if err := params.Body(c, &in); err != nil {
		return httperr.Respond(c, err)
	}
	client, err := h.Service.Update(c.UserContext(), id, in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Client updated successfully", client, nil)
}

// DELETE /api/v1/clients/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Client deleted successfully", fiber.Map{"id": id}, nil)
}

// POST /api/v1/clients/:id/restore
func (h *Handlers) Restore(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	client, err := h.Service.Restore(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Client restored successfully", client, nil)
}

// DELETE /api/v1/clients/:id/purge
func (h *Handlers) Purge(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Purge(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Client purged successfully", fiber.Map{"id": id}, nil)
}

// GET /api/v1/auctions/:id/sellers
func (h *Handlers) Sellers(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	sellers, err := h.Service.ListSellers(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Sellers fetched successfully", sellers, nil)
}
