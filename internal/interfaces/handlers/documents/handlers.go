package documents

import (
	docsvc "remate/internal/application/documents"
	"remate/internal/interfaces/handlers/httperr"
	"remate/internal/interfaces/handlers/params"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Converter docsvc.Converter
}

type convertRequest struct {
	Path string `json:"path"`
}

// POST /api/v1/documents/convert
func (h *Handlers) Convert(c *fiber.Ctx) error {
	if h.Converter == nil {
		return httperr.Respond(c, fiber.NewError(fiber.StatusServiceUnavailable, "PDF conversion is disabled"))
	}
	var req convertRequest
	if err := params.Body(c, &req); err != nil {
		return httperr.Respond(c, err)
	}
	out, err := h.Converter.Convert(c.UserContext(), req.Path)
	if err != nil {
		return httperr.Respond(c, err)
	}
	return response.Success(c, "Document converted successfully", fiber.Map{"input": req.Path, "output": out}, nil)
}
