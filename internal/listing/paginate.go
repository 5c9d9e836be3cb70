// Package listing pages, filters and merges entity lists. Every function is
// pure: inputs are never mutated and identical inputs give identical outputs.
package listing

import "github.com/MrSnakeDoc/banho/internal/content"

// Pagination describes one page of a list.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// HasNext reports whether a page follows this one.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether a page precedes this one.
func (p Pagination) HasPrev() bool { return p.Page > 1 && p.TotalPages > 0 }

// Page is a slice of items plus its pagination metadata.
type Page struct {
	Items      []content.Entity `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// NewPagination computes page metadata. Page and limit below 1 are raised to 1.
// An empty list has zero pages.
func NewPagination(total, page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// Offset returns the index of the first item on the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the requested page of items. A page past the end yields
// an empty, non-nil item slice.
func Paginate(items []content.Entity, page, limit int) Page {
	p := NewPagination(len(items), page, limit)
	out := []content.Entity{}
	if p.Page > p.TotalPages {
		return Page{Items: out, Pagination: p}
	}
	start := p.Offset()
	end := min(start+p.Limit, len(items))
	out = append(out, items[start:end]...)
	return Page{Items: out, Pagination: p}
}
