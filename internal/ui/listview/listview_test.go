package listview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/ui/widget"
)

type row struct {
	ID   string
	Name string
}

func testTable() Table[row] {
	columns := []Column[row]{
		{Title: "ID", Width: 8, Render: func(r row) string { return r.ID }},
		{Title: "Name", Width: 20, SortKey: "name", Render: func(r row) string { return r.Name }},
	}
	empty := EmptyState{Icon: "∅", Message: "No records found", Description: "Adjust the filters and try again"}
	return NewTable(columns, empty, func(r row) string { return r.ID }, widget.DefaultTheme)
}

func TestDisplayModesAreMutuallyExclusive(t *testing.T) {
	table := testTable()
	docs := []row{{ID: "1", Name: "a"}}

	cases := []struct {
		name    string
		state   State[row]
		want    displayMode
	}{
		{"loading with stale docs still occludes rows", State[row]{Docs: docs, Loading: true}, modeLoading},
		{"loading without docs", State[row]{Loading: true}, modeLoading},
		{"empty", State[row]{}, modeEmpty},
		{"rows", State[row]{Docs: docs}, modeRows},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, table.mode(tc.state))
		})
	}
}

func TestViewRendersExactlyOneBodyState(t *testing.T) {
	table := testTable()

	view := table.View(State[row]{Loading: true, Docs: []row{{ID: "1", Name: "stale"}}})
	assert.Contains(t, view, "Loading")
	assert.NotContains(t, view, "stale")
	assert.NotContains(t, view, "No records found")

	view = table.View(State[row]{})
	assert.Contains(t, view, "No records found")
	assert.Contains(t, view, "Adjust the filters and try again")

	view = table.View(State[row]{Docs: []row{{ID: "1", Name: "Summer Jam"}}})
	assert.Contains(t, view, "Summer Jam")
	assert.NotContains(t, view, "Loading")
}

func TestSortIndicatorFollowsQuery(t *testing.T) {
	table := testTable()
	state := State[row]{
		Docs:  []row{{ID: "1", Name: "a"}},
		Query: models.ListQuery{SortBy: "name", SortOrder: models.SortDesc},
	}
	assert.Contains(t, table.View(state), "Name ▼")

	state.Query.SortOrder = models.SortAsc
	assert.Contains(t, table.View(state), "Name ▲")

	state.Query.SortBy = "other"
	view := table.View(state)
	assert.NotContains(t, view, "▲")
	assert.NotContains(t, view, "▼")
}

func TestFooterHiddenForSinglePage(t *testing.T) {
	table := testTable()
	state := State[row]{
		Docs: []row{{ID: "1", Name: "a"}},
		Page: models.Page[row]{TotalDocs: 1, TotalPages: 1, CurrentPage: 1, Limit: 10},
	}
	assert.NotContains(t, table.View(state), "Showing")
}

func TestFooterShowsRangeAndBoundaries(t *testing.T) {
	table := testTable()
	page := models.Page[row]{TotalDocs: 25, TotalPages: 3, CurrentPage: 3, Limit: 10}
	state := State[row]{Docs: []row{{ID: "21", Name: "u"}}, Page: page}

	view := table.View(state)
	assert.Contains(t, view, "Showing 21 to 25 of 25 results")

	require.True(t, page.HasPrev())
	require.False(t, page.HasNext(), "next is disabled on the last page")

	first := models.Page[row]{TotalDocs: 25, TotalPages: 3, CurrentPage: 1, Limit: 10}
	require.False(t, first.HasPrev(), "previous is disabled on the first page")
	require.True(t, first.HasNext())
}

func TestActionLoadingSpinnerMarksOnlyItsRow(t *testing.T) {
	table := testTable()
	state := State[row]{
		Docs:            []row{{ID: "1", Name: "left alone"}, {ID: "2", Name: "being locked"}},
		ActionLoadingID: "2",
	}
	lines := strings.Split(table.View(state), "\n")

	var marked []string
	for _, line := range lines {
		if strings.Contains(line, "⟳") {
			marked = append(marked, line)
		}
	}
	require.Len(t, marked, 1)
	assert.Contains(t, marked[0], "being locked")
}

func TestStatusBadgeMapping(t *testing.T) {
	theme := widget.DefaultTheme

	assert.Equal(t, theme.StatusGood, theme.EventStatusColor(models.EventLive))
	assert.Equal(t, theme.StatusWarn, theme.AdminStatusColor(models.AdminPending))
	assert.Equal(t, theme.StatusBad, theme.AdminStatusColor(models.AdminRejected))
	assert.Equal(t, theme.FaintText, theme.EventStatusColor("Bogus"), "unknown values fall back")
	assert.Equal(t, theme.StatusBad, theme.AccountStatusColor(models.AccountActive, true), "locked overrides active")

	badge := Badge("Live", theme.EventStatusColor(models.EventLive))
	assert.Contains(t, badge, "Live")
}
