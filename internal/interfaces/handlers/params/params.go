// Package params reads path, query and body values for the handlers.
package params

import (
	"strconv"
	"strings"
	"time"

	"remate/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// ID reads a positive integer path parameter.
func ID(c *fiber.Ctx, name string) (uint, error) {
	return parseID(name, c.Params(name))
}

// QueryID reads an optional positive integer query value; absent is zero.
func QueryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return parseID(name, raw)
}

func parseID(name, raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return uint(n), nil
}

// Page reads the list filters shared by every collection endpoint.
func Page(c *fiber.Ctx) (domain.PageQuery, error) {
	q := domain.PageQuery{
		Search:         c.Query("search"),
		Province:       c.Query("province"),
		Status:         c.Query("status"),
		Page:           c.QueryInt("page", 1),
		PageSize:       c.QueryInt("page_size", domain.DefaultPageSize),
		IncludeDeleted: c.QueryBool("include_deleted", false),
	}
	var err error
	if q.AuctionID, err = QueryID(c, "auction_id"); err != nil {
		return q, err
	}
	if q.ClientID, err = QueryID(c, "client_id"); err != nil {
		return q, err
	}
	return q.Normalize(), nil
}

// Body decodes the JSON request body into dst.
func Body(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Invalid("body", "malformed request body")
	}
	return nil
}

// Date parses a calendar day (2006-01-02) or an RFC 3339 timestamp.
// Blank input is the zero time.
func Date(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "must be a date like 2024-05-20")
	}
	return t, nil
}
