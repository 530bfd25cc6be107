package pagination

import "github.com/JaimeStill/entity-handlers/pkg/query"

// PageRequest represents a request for a page of records with optional search and sorting.
// Page is zero-indexed.
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Search   *string           `json:"search,omitempty"`
	Sort     []query.SortField `json:"sort,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and page size.
func (r *PageRequest) Offset() int {
	return r.Page * r.PageSize
}

// Page holds one page of records as returned by a store.
type Page[T any] struct {
	Content  []T `json:"content"`
	Number   int `json:"number"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// NewPage creates a Page for the given request. Nil content becomes empty.
func NewPage[T any](content []T, req PageRequest, total int) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:  content,
		Number:   req.Page,
		PageSize: req.PageSize,
		Total:    total,
	}
}

// HasContent reports whether the page carries any records.
func (p Page[T]) HasContent() bool {
	return len(p.Content) > 0
}

// TotalPages returns the number of pages available for the total record count.
func (p Page[T]) TotalPages() int {
	if p.PageSize < 1 {
		return 0
	}
	pages := p.Total / p.PageSize
	if p.Total%p.PageSize != 0 {
		pages++
	}
	return pages
}

// Window returns the half-open bounds [start, end) of the requested page within
// a sequence of n items, clamped to n. A page lying past the end, including one
// whose offset would overflow int, yields (n, n).
func Window(req PageRequest, n int) (int, int) {
	if req.Page < 0 || req.PageSize < 1 || req.Page > n/req.PageSize {
		return n, n
	}
	start := req.Offset()
	if start > n {
		start = n
	}
	end := start + req.PageSize
	if end > n {
		end = n
	}
	return start, end
}
