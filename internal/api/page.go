package api

import (
	"net/http"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Page holds normalized pagination parameters.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Meta describes one page of a paginated result set.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Paginated is the standard list envelope.
type Paginated struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// ParsePage reads page/limit query parameters, clamping out-of-range values
// to defaults.
func ParsePage(r *http.Request) Page {
	p := Page{Page: defaultPage, Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}
	return p
}

// NewMeta computes page metadata for a total row count.
func NewMeta(p Page, total int) Meta {
	totalPages := total / p.Limit
	if total%p.Limit != 0 {
		totalPages++
	}
	return Meta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: totalPages}
}
