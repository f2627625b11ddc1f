package common

import (
	"net/http"
	"strconv"
)

const maxPerPage = 100

// ParsePagination reads the "page" and "limit" query parameters. Missing or
// invalid values fall back to page 1 and defaultPerPage; limit is capped.
func ParsePagination(r *http.Request, defaultPerPage int) (page, perPage int) {
	page, perPage = 1, defaultPerPage

	query := r.URL.Query()
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
