package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evlive/admin-console/internal/models"
)

func dayPtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func fixedFetch(pages map[int]models.Page[string]) FetchFunc[string] {
	return func(_ context.Context, query models.ListQuery) (models.Page[string], error) {
		page, ok := pages[query.Page]
		if !ok {
			return models.Page[string]{}, errors.New("no such page")
		}
		return page, nil
	}
}

func TestSetFiltersResetsPage(t *testing.T) {
	list := NewList[string](nil, 10, nil)
	list.page.TotalPages = 9
	list.SetPage(4)
	require.Equal(t, 4, list.Query().Page)

	list.SetPage(0)
	require.Equal(t, 1, list.Query().Page, "page never drops below 1")
	list.SetPage(99)
	require.Equal(t, 9, list.Query().Page, "page clamps to the known last page")

	list.query.Page = 4
	list.SetFilters(map[string]string{"status": "Live"})
	assert.Equal(t, 1, list.Query().Page)
	assert.Equal(t, "Live", list.Query().Filters["status"])

	list.query.Page = 3
	list.SetSearch("rock")
	assert.Equal(t, 1, list.Query().Page, "search change resets page")

	list.query.Page = 5
	start := dayPtr(2025, time.March, 1)
	list.SetDateRange(models.DateRange{Start: start})
	assert.Equal(t, 1, list.Query().Page, "date range change resets page")
}

func TestSetFiltersMergesShallow(t *testing.T) {
	list := NewList[string](nil, 10, nil)
	list.SetFilters(map[string]string{"status": "Live", "category": "Music"})
	list.SetFilters(map[string]string{"status": "Past"})

	assert.Equal(t, "Past", list.Query().Filters["status"])
	assert.Equal(t, "Music", list.Query().Filters["category"], "untouched keys survive the merge")
}

func TestToggleSort(t *testing.T) {
	list := NewList[string](nil, 10, nil)

	list.ToggleSort("date")
	assert.Equal(t, "date", list.Query().SortBy)
	assert.Equal(t, models.SortDesc, list.Query().SortOrder, "new field starts descending")

	list.ToggleSort("date")
	assert.Equal(t, models.SortAsc, list.Query().SortOrder)

	list.ToggleSort("date")
	assert.Equal(t, models.SortDesc, list.Query().SortOrder)

	list.ToggleSort("title")
	assert.Equal(t, "title", list.Query().SortBy)
	assert.Equal(t, models.SortDesc, list.Query().SortOrder, "switching fields resets to descending")
}

func TestFetchApplyCycle(t *testing.T) {
	pages := map[int]models.Page[string]{
		1: {Docs: []string{"a", "b"}, TotalDocs: 12, TotalPages: 2, CurrentPage: 1, Limit: 10},
		2: {Docs: []string{"c", "d"}, TotalDocs: 12, TotalPages: 2, CurrentPage: 2, Limit: 10},
	}
	list := NewList(fixedFetch(pages), 10, nil)

	seq, query := list.StartFetch()
	require.True(t, list.Loading())
	page, err := list.Fetch(context.Background(), query)
	require.NoError(t, err)
	require.True(t, list.Apply(seq, page, nil))

	assert.False(t, list.Loading())
	assert.Equal(t, []string{"a", "b"}, list.Docs())
	assert.True(t, list.Page().HasNext())
	assert.False(t, list.Page().HasPrev(), "previous disabled on the first page")

	list.SetPage(2)
	seq, query = list.StartFetch()
	page, err = list.Fetch(context.Background(), query)
	require.NoError(t, err)
	require.True(t, list.Apply(seq, page, nil))

	assert.False(t, list.Page().HasNext(), "next disabled on the last page")
	assert.True(t, list.Page().HasPrev())
}

func TestApplyDiscardsStaleResponse(t *testing.T) {
	list := NewList[string](nil, 10, nil)

	slowSeq, _ := list.StartFetch()
	fastSeq, _ := list.StartFetch()

	fresh := models.Page[string]{Docs: []string{"fresh"}, TotalDocs: 1, TotalPages: 1, CurrentPage: 1, Limit: 10}
	require.True(t, list.Apply(fastSeq, fresh, nil))
	assert.Equal(t, []string{"fresh"}, list.Docs())

	stale := models.Page[string]{Docs: []string{"stale"}, TotalDocs: 1, TotalPages: 1, CurrentPage: 1, Limit: 10}
	assert.False(t, list.Apply(slowSeq, stale, nil), "late response from the earlier request is dropped")
	assert.Equal(t, []string{"fresh"}, list.Docs())
}

func TestApplyFailureKeepsStaleDocs(t *testing.T) {
	list := NewList[string](nil, 10, nil)

	seq, _ := list.StartFetch()
	page := models.Page[string]{Docs: []string{"a"}, TotalDocs: 1, TotalPages: 1, CurrentPage: 1, Limit: 10}
	require.True(t, list.Apply(seq, page, nil))

	seq, _ = list.StartFetch()
	require.True(t, list.Apply(seq, models.Page[string]{}, errors.New("boom")))

	assert.False(t, list.Loading(), "loading always clears")
	assert.NotEmpty(t, list.Err())
	assert.Equal(t, []string{"a"}, list.Docs(), "previous records stay in place")

	list.ClearError()
	assert.Empty(t, list.Err())
}

func TestSearchDebounceRevisions(t *testing.T) {
	list := NewList[string](nil, 10, nil)

	first := list.SetSearch("ro")
	second := list.SetSearch("roc")

	assert.False(t, list.DebounceCurrent(first), "earlier keystroke's timer is stale")
	assert.True(t, list.DebounceCurrent(second))
}

func TestActionLoadingIsSingleScalar(t *testing.T) {
	list := NewList[string](nil, 10, nil)

	list.BeginAction("user-1")
	assert.Equal(t, "user-1", list.ActionLoading())

	// A second concurrent row action takes over the one slot; the
	// first row's spinner is lost. This captures the state shape's
	// actual behavior.
	list.BeginAction("user-2")
	assert.Equal(t, "user-2", list.ActionLoading())

	list.FinishAction(nil)
	assert.Empty(t, list.ActionLoading())

	list.BeginAction("user-3")
	list.FinishAction(errors.New("locked by another admin"))
	assert.Empty(t, list.ActionLoading(), "spinner clears even on failure")
	assert.Equal(t, "locked by another admin", list.Err())
}

func TestRangeLabel(t *testing.T) {
	page := models.Page[string]{TotalDocs: 25, TotalPages: 3, CurrentPage: 3, Limit: 10}
	assert.Equal(t, "Showing 21 to 25 of 25 results", page.RangeLabel())

	page = models.Page[string]{TotalDocs: 0, TotalPages: 1, CurrentPage: 1, Limit: 10}
	assert.Empty(t, page.RangeLabel())
}
