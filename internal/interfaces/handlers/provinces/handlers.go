package provinces

import (
	provincesvc "remate/internal/application/provinces"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *provincesvc.Service
}

// GET /api/v1/provinces
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.UserContext())
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Provinces fetched successfully", out, nil)
}
