// Package view derives what a screen renders from its authoritative
// collection. Every function is pure: inputs are never mutated and results
// are recomputed on every call.
package view

import (
	"strings"

	"github.com/openlms-dev/admin-console/internal/models"
)

// Filter returns the entities matching query. A non-empty query matches when
// any search field contains it as a case-insensitive substring (OR across
// fields); an empty or whitespace query matches everything.
func Filter[T models.Entity](items []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range item.SearchFields() {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Pages summarises the pagination state of a derived slice.
type Pages struct {
	Current  int
	Total    int
	PageSize int
	// From and To are 1-based positions of the visible slice within the
	// filtered sequence; both are 0 when the sequence is empty.
	From int
	To   int
}

// Paginate returns the 1-based page of items for the given page size. A page
// outside [1, totalPages] clamps to the nearest boundary instead of erroring,
// and totalPages is never below 1 even for an empty input.
func Paginate[T any](items []T, page, pageSize int) ([]T, Pages) {
	if pageSize < 1 {
		pageSize = 1
	}

	total := (len(items) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	slice := make([]T, end-start)
	copy(slice, items[start:end])

	pages := Pages{Current: page, Total: total, PageSize: pageSize}
	if len(slice) > 0 {
		pages.From = start + 1
		pages.To = end
	}
	return slice, pages
}
