package shared

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit within int for any normalized limit
	MaxPage = math.MaxInt / MaxLimit
)

// PageRequest is a 1-based page request
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and clamps page and limit
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of records to skip
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata returned with every paginated listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes pages = ceil(total / limit)
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page PageRequest) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:      items,
		Pagination: NewPagination(page.Page, page.Limit, total),
	}
}
