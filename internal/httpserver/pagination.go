package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
)

// Page size bounds shared by every list endpoint.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// OffsetParams is a validated "page"/"page_size" pair. Offset is derived.
type OffsetParams struct {
	Page     int
	PageSize int
	Offset   int
}

// ParseOffsetParams reads "page" (1-based) and "page_size" from the query
// string. page_size is clamped to MaxPageSize.
func ParseOffsetParams(r *http.Request) (OffsetParams, error) {
	q := r.URL.Query()
	page, err := queryInt(q.Get("page"), "page", 1)
	if err != nil {
		return OffsetParams{}, err
	}
	size, err := queryInt(q.Get("page_size"), "page_size", DefaultPageSize)
	if err != nil {
		return OffsetParams{}, err
	}
	size = min(size, MaxPageSize)

	return OffsetParams{Page: page, PageSize: size, Offset: (page - 1) * size}, nil
}

func queryInt(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

// OffsetPage is the JSON envelope of a paginated list.
type OffsetPage[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PageSlice cuts one page out of an already filtered result set. Pages past
// the end are empty, never nil.
func PageSlice[T any](all []T, params OffsetParams) OffsetPage[T] {
	start := min(params.Offset, len(all))
	end := min(start+params.PageSize, len(all))

	items := make([]T, end-start)
	copy(items, all[start:end])

	page := OffsetPage[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: len(all),
	}
	if params.PageSize > 0 {
		page.TotalPages = (len(all) + params.PageSize - 1) / params.PageSize
	}
	return page
}
