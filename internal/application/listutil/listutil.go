// Package listutil turns page/per_page query parameters into SQL
// limits and response metadata for the paginated admin rosters.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the roster page size when the client does not ask
// for one.
const DefaultPerPage = 25

// MaxPerPage caps per_page so one request cannot pull the whole
// account table.
const MaxPerPage = 100

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: Page >= 1; PerPage in 1..MaxPerPage with the default applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// PageInfo carries pagination metadata for a roster response.
type PageInfo struct {
	Page       int // current page (1-indexed), clamped into range
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage), at least 1
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: Page clamped to 1..TotalPages; TotalPages >= 1
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row on the current page, or 0
// when the roster is empty.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row on the current page.
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}
