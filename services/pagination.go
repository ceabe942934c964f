package services

// DefaultPageSize is the page size used when the caller does not
// override it.
const DefaultPageSize = 10

const maxPageSize = 100

// PageParams selects one page of a result set.
type PageParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Normalize clamps page params to sane values.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > maxPageSize {
		p.PerPage = DefaultPageSize
	}
	return p
}

func (p PageParams) offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page wraps one page of results with totals.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// NewPage assembles a Page from already-fetched items and a total.
func NewPage[T any](items []T, total int64, params PageParams) Page[T] {
	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
	}
}
