package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 200
)

type ListQuery struct {
	PageNumber int
	PageSize   int
	Filter     string
}

// ResolveListQuery reads ?page_number=, ?page_size= and ?filter= with the
// API defaults (1, 10, "") and normalizes out-of-range values.
func ResolveListQuery(c *fiber.Ctx) ListQuery {
	page := c.QueryInt("page_number", DefaultPageNumber)
	if page < 1 {
		page = DefaultPageNumber
	}
	size := c.QueryInt("page_size", DefaultPageSize)
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return ListQuery{
		PageNumber: page,
		PageSize:   size,
		Filter:     strings.TrimSpace(c.Query("filter")),
	}
}
