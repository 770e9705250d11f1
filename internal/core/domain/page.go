package domain

import "strconv"

// Pageable requests one page of a backend collection.
type Pageable struct {
	// Page is zero-based.
	Page int
	Size int

	// Sort is "field,direction", e.g. "firstName,asc". Empty for backend default.
	Sort string
}

// Params returns the query parameters for the pageable, always including the page.
func (p Pageable) Params() map[string]string {
	params := map[string]string{"page": strconv.Itoa(max(p.Page, 0))}
	if p.Size > 0 {
		params["size"] = strconv.Itoa(p.Size)
	}
	if p.Sort != "" {
		params["sort"] = p.Sort
	}
	return params
}

// Page is one page of a backend collection.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	TotalPages    int
	Number        int
	Size          int
}

// Last reports whether this is the final page.
func (p *Page[T]) Last() bool {
	return p.Number+1 >= p.TotalPages
}
