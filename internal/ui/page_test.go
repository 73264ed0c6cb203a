package ui

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/ui/listview"
	"github.com/evlive/admin-console/internal/ui/widget"
)

type testRow struct {
	ID   string
	Name string
}

type mutateCall struct {
	action models.ActionKind
	id     string
	reason string
}

func testPage(t *testing.T, actions func(testRow) []models.Action, mutated *[]mutateCall) (*ResourcePage[testRow], *atomic.Int64) {
	t.Helper()
	fetches := &atomic.Int64{}
	fetch := func(_ context.Context, query models.ListQuery) (models.Page[testRow], error) {
		fetches.Add(1)
		return models.Page[testRow]{
			Docs:        []testRow{{ID: "r1", Name: "first"}, {ID: "r2", Name: "second"}},
			TotalDocs:   2,
			TotalPages:  1,
			CurrentPage: query.Page,
			Limit:       query.Limit,
		}, nil
	}
	if actions == nil {
		actions = func(testRow) []models.Action { return nil }
	}
	cfg := PageConfig[testRow]{
		Name:  "rows",
		Title: "Rows",
		Columns: []listview.Column[testRow]{
			{Title: "Name", Width: 20, Render: func(r testRow) string { return r.Name }},
		},
		Filters: []FilterDef{
			{Key: "status", Label: "Status", Options: []string{models.FilterAll, "Open", "Closed"}},
		},
		SortFields: []string{"name"},
		RowID:      func(r testRow) string { return r.ID },
		RowLabel:   func(r testRow) string { return r.Name },
		Actions:    actions,
		Fetch:      fetch,
		Mutate: func(_ context.Context, action models.ActionKind, id, reason string) (string, error) {
			if mutated != nil {
				*mutated = append(*mutated, mutateCall{action: action, id: id, reason: reason})
			}
			return "done", nil
		},
	}
	page := NewResourcePage(cfg, 10, 10*time.Millisecond, t.TempDir(), widget.DefaultTheme, zap.NewNop())
	page.SetSize(100, 30)
	return page, fetches
}

func deliver(t *testing.T, page *ResourcePage[testRow], cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	require.NotNil(t, msg)
	return msg
}

func load(t *testing.T, page *ResourcePage[testRow]) {
	t.Helper()
	msg := deliver(t, page, page.Init())
	page.Update(msg)
	require.Len(t, page.list.Docs(), 2)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFilterCycleResetsPageAndFetches(t *testing.T) {
	page, fetches := testPage(t, nil, nil)
	load(t, page)
	before := fetches.Load()

	cmd := page.Update(keyRunes("1"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Open", page.list.Query().Filters["status"])
	assert.Equal(t, 1, page.list.Query().Page)

	cmd()
	assert.Equal(t, before+1, fetches.Load())

	// Two more presses wrap back to the sentinel.
	page.Update(keyRunes("1"))
	page.Update(keyRunes("1"))
	assert.Equal(t, models.FilterAll, page.list.Query().Filters["status"])
}

func TestActionMenuSkippedForActionlessRows(t *testing.T) {
	page, _ := testPage(t, nil, nil)
	load(t, page)

	// Read-only pages return no actions; Enter must not open an
	// empty menu, and a second Enter must be a no-op.
	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, page.dropdown)
	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, page.dropdown)
	require.Nil(t, page.modal)
}

func TestActionFlowThroughModal(t *testing.T) {
	var calls []mutateCall
	actions := func(testRow) []models.Action {
		return []models.Action{
			{Kind: models.ActionView, Label: "View details"},
			{Kind: models.ActionDelete, Label: "Remove", Destructive: true},
		}
	}
	page, fetches := testPage(t, actions, &calls)
	load(t, page)

	// Enter opens the dropdown on the cursor row.
	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, page.dropdown)
	assert.Equal(t, "r1", page.dropdown.RowID)

	// Select the destructive entry; it opens the modal instead of
	// dispatching.
	page.Update(tea.KeyMsg{Type: tea.KeyDown})
	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, page.dropdown)
	require.NotNil(t, page.modal)

	// Confirming dispatches the mutation.
	cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	confirm := deliver(t, page, cmd)
	cmd = page.Update(confirm)
	done := deliver(t, page, cmd)

	require.Len(t, calls, 1)
	assert.Equal(t, models.ActionDelete, calls[0].action)
	assert.Equal(t, "r1", calls[0].id)

	// The completed mutation triggers a reconciling fetch.
	before := fetches.Load()
	refetch := page.Update(done)
	require.NotNil(t, refetch)
	refetch()
	assert.Equal(t, before+1, fetches.Load())
	assert.Equal(t, "", page.list.ActionLoading())
}

func TestReasonedActionCarriesReason(t *testing.T) {
	var calls []mutateCall
	actions := func(testRow) []models.Action {
		return []models.Action{
			{Kind: models.ActionReject, Label: "Reject", Destructive: true, NeedsReason: true},
		}
	}
	page, _ := testPage(t, actions, &calls)
	load(t, page)

	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, page.modal)

	// Enter is a no-op until a reason is typed.
	assert.Nil(t, page.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.NotNil(t, page.modal)

	page.Update(keyRunes("spam"))
	cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	confirm := deliver(t, page, cmd)
	cmd = page.Update(confirm)
	deliver(t, page, cmd)

	require.Len(t, calls, 1)
	assert.Equal(t, "spam", calls[0].reason)
}

func TestStaleFetchResponseIgnored(t *testing.T) {
	page, _ := testPage(t, nil, nil)
	load(t, page)

	// Issue two overlapping fetches and deliver them out of order.
	first := page.fetchCmd()
	second := page.fetchCmd()

	secondMsg := deliver(t, page, second)
	firstMsg := deliver(t, page, first)

	page.Update(secondMsg)
	assert.False(t, page.list.Loading())

	page.Update(firstMsg)
	// The stale response must not flip the screen back to loading or
	// disturb the docs.
	assert.False(t, page.list.Loading())
	assert.Len(t, page.list.Docs(), 2)
}

func TestSearchDebounceIgnoresSupersededKeystroke(t *testing.T) {
	page, fetches := testPage(t, nil, nil)
	load(t, page)
	before := fetches.Load()

	page.Update(keyRunes("/"))
	require.True(t, page.CapturesText())

	page.Update(keyRunes("a"))
	page.Update(keyRunes("b"))

	// The first keystroke's timer fires after a second edit; nothing
	// should be fetched for it.
	stale := searchDebounceMsg{PageName: "rows", Rev: 1}
	assert.Nil(t, page.Update(stale))
	assert.Equal(t, before, fetches.Load())

	current := searchDebounceMsg{PageName: "rows", Rev: 2}
	cmd := page.Update(current)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, before+1, fetches.Load())
	assert.Equal(t, "ab", page.list.Query().Search)
}

func TestOutsideClickClosesDropdown(t *testing.T) {
	actions := func(testRow) []models.Action {
		return []models.Action{{Kind: models.ActionView, Label: "View details"}}
	}
	page, _ := testPage(t, actions, nil)
	load(t, page)

	page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, page.dropdown)

	page.Update(tea.MouseMsg{X: 90, Y: 25, Action: tea.MouseActionPress})
	assert.Nil(t, page.dropdown)
}
