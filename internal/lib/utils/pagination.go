package utils

// Pagination defaults and bounds applied to list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination carries the normalized page parameters for a list query.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// NewPagination normalizes raw page parameters: zero or negative values
// fall back to defaults, and page size is capped at MaxPageSize.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

// Limit returns the SQL LIMIT value.
func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset returns the SQL OFFSET value.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageMeta describes a page of results in list responses.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageMeta computes page metadata from the normalized pagination and
// the total row count.
func NewPageMeta(p Pagination, totalItems int64) PageMeta {
	totalPages := int((totalItems + int64(p.PageSize) - 1) / int64(p.PageSize))

	return PageMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
