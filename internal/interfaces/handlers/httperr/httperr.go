// Package httperr maps service errors to HTTP statuses and error bodies.
package httperr

import (
	"errors"

	"remate/internal/application/auctions"
	"remate/internal/application/common"
	"remate/internal/application/documents"
	"remate/internal/application/sales"
	"remate/internal/domain"
	"remate/internal/infrastructure/database"
	"remate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Status picks the HTTP status for err.
func Status(err error) int {
	var fe *fiber.Error
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, database.ErrUniqueViolation),
		errors.Is(err, auctions.ErrIllegalTransition),
		errors.Is(err, sales.ErrBundleAlreadySold),
		errors.Is(err, common.ErrNotRetired):
		return fiber.StatusConflict
	case errors.Is(err, database.ErrForeignKeyViolation),
		errors.Is(err, database.ErrCheckViolation),
		errors.Is(err, database.ErrNotNullViolation),
		errors.Is(err, common.ErrParentRetired),
		errors.Is(err, sales.ErrBundleAuctionMismatch):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, documents.ErrConversionFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Details describes the typed error behind err for the error body.
func Details(err error) map[string]interface{} {
	details := map[string]interface{}{}
	var (
		ce  *database.ConstraintError
		ve  *domain.ValidationError
		te  *auctions.TransitionError
		be  *sales.BundleError
		cve *documents.ConversionError
	)
	switch {
	case errors.As(err, &ce):
		details["kind"] = string(ce.Kind)
		details["table"] = ce.Table
		details["constraint"] = ce.Constraint
	case errors.As(err, &ve):
		details["field"] = ve.Field
	case errors.As(err, &te):
		details["action"] = string(te.Action)
		details["from"] = string(te.From)
	case errors.As(err, &be):
		details["bundle_id"] = be.BundleID
		if be.SaleID != 0 {
			details["sale_id"] = be.SaleID
		}
	case errors.As(err, &cve):
		details["input"] = cve.Input
		details["detail"] = cve.Detail
	}
	return details
}

// Respond writes the error body for err. Unexpected errors are not echoed.
func Respond(c *fiber.Ctx, err error) error {
	code := Status(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Internal Server Error"
	}
	return response.Error(c, message, code, Details(err))
}
