package bundles

import (
	bundlesvc "remate/internal/application/bundles"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *bundlesvc.Service
}

// GET /api/v1/bundles?auction_id=&status=
func (h *Handlers) List(c *fiber.Ctx) error {
	q, err := params.Page(c)
	if err != nil {
		return httperr.Respond(c, err)
	}
	page, err := h.Service.List(c.UserContext(), q)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Paged(c, "Bundles fetched successfully", page)
}

// GET /api/v1/bundles/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	b, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Bundle fetched successfully", b, nil)
}

// POST /api/v1/bundles
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in bundlesvc.Input
	if err := params.Body(c, &in); err != nil {
		return httperr.Respond(c, err)
	}
	b, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.SuccessCreated(c, "Bundle created successfully", b, nil)
}

// PUT /api/v1/bundles/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	var in bundlesvc.Input
	if err := params.Body(c, &in); err != nil {
		return httperr.Respond(c, err)
	}
	b, err := h.Service.Update(c.UserContext(), id, in)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Bundle updated successfully", b, nil)
}

// DELETE /api/v1/bundles/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Bundle deleted successfully", fiber.Map{"id": id}, nil)
}

// POST /api/v1/bundles/:id/restore
func (h *Handlers) Restore(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	b, err := h.Service.Restore(c.UserContext(), id)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Bundle restored successfully", b, nil)
}

// DELETE /api/v1/bundles/:id/purge
func (h *Handlers) Purge(c *fiber.Ctx) error {
	id, err := params.ID(c, "id")
	if err != nil {
		return httperr.Respond(c, err)
	}
	if err := h.Service.Purge(c.UserContext(), id); err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Bundle purged successfully", fiber.Map{"id": id}, nil)
}
