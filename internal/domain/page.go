package domain

// DefaultPageSize matches the page size of the desktop tables.
const DefaultPageSize = 12

const maxPageSize = 100

// PageQuery filters list operations. Zero values mean "no filter".
// Soft-deleted rows are excluded unless IncludeDeleted is set.
type PageQuery struct {
	Search         string
	Province       string
	Status         string
	AuctionID      uint
	ClientID       uint
	Page           int
	PageSize       int
	IncludeDeleted bool
}

func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q
}

func (q PageQuery) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PageSize
}

// Page is one slice of a list result.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, q PageQuery) Page[T] {
	q = q.Normalize()
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return Page[T]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize, TotalPages: pages}
}
