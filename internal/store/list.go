package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/models"
	appErrors "github.com/evlive/admin-console/pkg/errors"
)

// FetchFunc loads one page of records for a query. Resource clients
// satisfy this shape directly.
type FetchFunc[T any] func(ctx context.Context, query models.ListQuery) (models.Page[T], error)

// List owns one resource's list-screen state: the current page of
// records, loading and error flags, pagination metadata, and the
// filter/sort/search query. It is an explicit instance with an
// injected fetch function rather than a process-wide singleton, so
// every test can construct a fresh one.
//
// Fetches resolve asynchronously and nothing stops an older request
// from finishing after a newer one. Every fetch therefore takes a
// monotonic sequence number, and Apply discards any result that is
// not from the most recently issued request.
type List[T any] struct {
	fetch  FetchFunc[T]
	logger *zap.Logger

	query   models.ListQuery
	page    models.Page[T]
	loading bool
	err     string

	// actionLoading holds the id of the single row with an in-flight
	// mutation. One scalar, so a second concurrent row action takes
	// over the slot.
	actionLoading string

	fetchSeq  uint64
	searchRev int
}

// NewList builds a container starting on page 1 with the given page size.
func NewList[T any](fetch FetchFunc[T], limit int, logger *zap.Logger) *List[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List[T]{
		fetch:  fetch,
		logger: logger,
		query:  models.NewListQuery(limit),
	}
}

// Query returns the current list query.
func (l *List[T]) Query() models.ListQuery { return l.query }

// Page returns the last applied page of records.
func (l *List[T]) Page() models.Page[T] { return l.page }

// Docs returns the current records.
func (l *List[T]) Docs() []T { return l.page.Docs }

// Loading reports whether a fetch is in flight.
func (l *List[T]) Loading() bool { return l.loading }

// Err returns the current error banner text, empty when none.
func (l *List[T]) Err() string { return l.err }

// ActionLoading returns the id of the row with an in-flight mutation.
func (l *List[T]) ActionLoading() string { return l.actionLoading }

// SetFilters shallow-merges partial into the filter set and resets the
// page to 1. The reset lives here, not at call sites, so that no new
// screen can forget it.
func (l *List[T]) SetFilters(partial map[string]string) {
	if l.query.Filters == nil {
		l.query.Filters = map[string]string{}
	}
	for key, val := range partial {
		l.query.Filters[key] = val
	}
	l.query.Page = 1
}

// SetDateRange installs a date filter window and resets the page.
func (l *List[T]) SetDateRange(r models.DateRange) {
	l.query.DateRange = r.Normalized()
	l.query.Page = 1
}

// ClearFilters drops every filter, the date range, and the search
// term, returning to page 1.
func (l *List[T]) ClearFilters() {
	l.query.Filters = map[string]string{}
	l.query.DateRange = models.DateRange{}
	l.query.Search = ""
	l.query.Page = 1
}

// SetPage moves to page n, clamped to the known page range.
func (l *List[T]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if l.page.TotalPages > 0 && n > l.page.TotalPages {
		n = l.page.TotalPages
	}
	l.query.Page = n
}

// ToggleSort applies the list-view sort rule: clicking the active
// field flips its order, clicking a new field makes it active
// descending.
func (l *List[T]) ToggleSort(field string) {
	if l.query.SortBy == field {
		l.query.SortOrder = l.query.SortOrder.Toggle()
		return
	}
	l.query.SortBy = field
	l.query.SortOrder = models.SortDesc
}

// SetSearch updates the search term, resets the page, and returns a
// debounce revision. The caller schedules a delayed fetch carrying the
// revision; DebounceCurrent tells it whether the term changed again in
// the meantime.
func (l *List[T]) SetSearch(term string) int {
	l.query.Search = term
	l.query.Page = 1
	l.searchRev++
	return l.searchRev
}

// DebounceCurrent reports whether rev is still the latest search
// revision. A stale revision means another keystroke restarted the
// timer and this one should do nothing.
func (l *List[T]) DebounceCurrent(rev int) bool { return rev == l.searchRev }

// StartFetch marks the container loading and returns the sequence
// number and query snapshot for the request about to be issued.
func (l *List[T]) StartFetch() (uint64, models.ListQuery) {
	l.fetchSeq++
	l.loading = true
	return l.fetchSeq, l.query
}

// Fetch runs the injected fetch function for the given query snapshot.
func (l *List[T]) Fetch(ctx context.Context, query models.ListQuery) (models.Page[T], error) {
	return l.fetch(ctx, query)
}

// Apply installs a fetch result. Results from any request other than
// the most recently issued one are discarded, so a slow early response
// can never overwrite a fresher page. On failure the previous records
// stay in place and only the error banner changes. Returns false when
// the result was discarded as stale.
func (l *List[T]) Apply(seq uint64, page models.Page[T], err error) bool {
	if seq != l.fetchSeq {
		l.logger.Debug("discarding stale list response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", l.fetchSeq),
		)
		return false
	}
	l.loading = false
	if err != nil {
		l.err = appErrors.UserMessage(err)
		return true
	}
	l.err = ""
	l.page = page
	if page.CurrentPage > 0 {
		l.query.Page = page.CurrentPage
	}
	return true
}

// BeginAction marks one row's mutation in flight.
func (l *List[T]) BeginAction(recordID string) {
	l.actionLoading = recordID
	l.err = ""
}

// FinishAction clears the row spinner; on failure it raises the error
// banner. Success does not patch the row locally: the caller re-fetches
// the current page and reconciles against the server.
func (l *List[T]) FinishAction(err error) {
	l.actionLoading = ""
	if err != nil {
		l.err = appErrors.UserMessage(err)
	}
}

// ClearError dismisses the error banner.
func (l *List[T]) ClearError() { l.err = "" }
