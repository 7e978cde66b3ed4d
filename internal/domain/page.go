package domain

// Pagination defaults shared by every paginated list.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// MaxPage keeps Offset far from integer overflow.
	MaxPage = 1_000_000
)

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. NewPaginationParams caps Page at MaxPage and Limit at
// MaxPageLimit.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil or non-positive values fall back to page=1, limit=DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a list together with the total row count.
type Page[T any] struct {
	Items []T
	Total int64
}
