package models

import (
	"fmt"
	"time"
)

// SortOrder is the direction of the single active sort field.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle flips asc and desc.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// FilterAll is the sentinel dropdown value meaning "unfiltered".
// Filters carrying it (or an empty string) are omitted from query
// strings so the server applies its default.
const FilterAll = "All"

// ListQuery captures everything a list request depends on: page,
// page size, the filter set, the active sort, and the search term.
type ListQuery struct {
	Page      int
	Limit     int
	Filters   map[string]string
	DateRange DateRange
	SortBy    string
	SortOrder SortOrder
	Search    string
}

// NewListQuery returns a query positioned on the first page.
func NewListQuery(limit int) ListQuery {
	if limit <= 0 {
		limit = 10
	}
	return ListQuery{
		Page:    1,
		Limit:   limit,
		Filters: map[string]string{},
	}
}

// Page holds one page of records plus the pagination metadata the
// server returned alongside them.
type Page[T any] struct {
	Docs        []T
	TotalDocs   int
	TotalPages  int
	CurrentPage int
	Limit       int
}

// RangeLabel renders the "Showing X to Y of Z results" footer text.
// Returns the empty string when there is nothing to show.
func (p Page[T]) RangeLabel() string {
	if p.TotalDocs == 0 {
		return ""
	}
	start := (p.CurrentPage-1)*p.Limit + 1
	end := p.CurrentPage * p.Limit
	if end > p.TotalDocs {
		end = p.TotalDocs
	}
	return fmt.Sprintf("Showing %d to %d of %d results", start, end, p.TotalDocs)
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }

// DateRange is a half-open filter window. Either bound may be nil.
// When both are set the picker guarantees Start <= End.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool { return r.Start == nil && r.End == nil }

// Normalized returns a copy with the bounds swapped if they arrived
// out of order.
func (r DateRange) Normalized() DateRange {
	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return DateRange{Start: r.End, End: r.Start}
	}
	return r
}
