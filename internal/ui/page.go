package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/store"
	"github.com/evlive/admin-console/internal/ui/listview"
	"github.com/evlive/admin-console/internal/ui/widget"
	"github.com/evlive/admin-console/pkg/export"
)

// FilterDef is one dropdown filter in a screen's filter bar. Options
// start with the "All" sentinel; cycling past the last option wraps
// back to it.
type FilterDef struct {
	Key     string
	Label   string
	Options []string
}

// PageConfig declares a resource screen as data: its columns, filter
// bar, sortable fields, per-row action table, and the client calls it
// dispatches. Every entity screen is an instantiation of this one
// shape, so screens cannot drift apart the way per-entity copies do.
type PageConfig[T any] struct {
	Name       string
	Title      string
	Columns    []listview.Column[T]
	Empty      listview.EmptyState
	Filters    []FilterDef
	SortFields []string
	DateFilter bool
	// DateImmediate selects the picker's immediate-apply mode; the
	// default defers changes until the operator commits them.
	DateImmediate bool
	CanCreate     bool

	RowID     func(T) string
	RowLabel  func(T) string
	Actions   func(T) []models.Action
	Detail    func(T) string
	ExportRow func(T) map[string]string

	Fetch  store.FetchFunc[T]
	Get    func(ctx context.Context, id string) (T, error)
	Mutate func(ctx context.Context, action models.ActionKind, id, reason string) (string, error)
}

// ResourcePage is one entity's list screen: a state container, the
// generic table, the filter bar, and the overlay chrome (action
// dropdown, confirmation modal, date picker, detail pane).
type ResourcePage[T any] struct {
	cfg    PageConfig[T]
	list   *store.List[T]
	table  listview.Table[T]
	keys   KeyMap
	theme  widget.Theme
	logger *zap.Logger

	debounce  time.Duration
	exportDir string

	cursor    int
	sortIndex int

	searchActive bool
	searchInput  string

	dropdown   *widget.Dropdown
	modal      *widget.ConfirmModal
	picker     *widget.DateRangePicker
	detailText string
	detailOpen bool

	width  int
	height int
}

// NewResourcePage builds a screen from its config.
func NewResourcePage[T any](cfg PageConfig[T], pageSize int, debounce time.Duration, exportDir string, theme widget.Theme, logger *zap.Logger) *ResourcePage[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourcePage[T]{
		cfg:       cfg,
		list:      store.NewList(cfg.Fetch, pageSize, logger),
		table:     listview.NewTable(cfg.Columns, cfg.Empty, cfg.RowID, theme),
		keys:      DefaultKeyMap,
		theme:     theme,
		logger:    logger,
		debounce:  debounce,
		exportDir: exportDir,
		sortIndex: -1,
	}
}

// Name identifies the page for message routing.
func (p *ResourcePage[T]) Name() string { return p.cfg.Name }

// Title is the tab label.
func (p *ResourcePage[T]) Title() string { return p.cfg.Title }

// CapturesText reports whether the page is consuming raw text input,
// so global key bindings must stand down.
func (p *ResourcePage[T]) CapturesText() bool {
	return p.searchActive || p.modal != nil
}

// Err surfaces the store's error banner text.
func (p *ResourcePage[T]) Err() string { return p.list.Err() }

// ClearError dismisses the store's error.
func (p *ResourcePage[T]) ClearError() { p.list.ClearError() }

// Init issues the first fetch.
func (p *ResourcePage[T]) Init() tea.Cmd { return p.fetchCmd() }

// SetSize records the layout box the page renders into.
func (p *ResourcePage[T]) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// fetchCmd snapshots the query, marks the store loading, and returns
// the command that runs the fetch off the event loop.
func (p *ResourcePage[T]) fetchCmd() tea.Cmd {
	seq, query := p.list.StartFetch()
	name := p.cfg.Name
	fetch := p.list.Fetch
	return func() tea.Msg {
		result, err := fetch(context.Background(), query)
		return pageDataMsg[T]{PageName: name, Seq: seq, Result: result, Err: err}
	}
}

func (p *ResourcePage[T]) mutateCmd(action models.ActionKind, id, reason string) tea.Cmd {
	p.list.BeginAction(id)
	name := p.cfg.Name
	mutate := p.cfg.Mutate
	return func() tea.Msg {
		success, err := mutate(context.Background(), action, id, reason)
		return mutationDoneMsg{PageName: name, Success: success, Err: err}
	}
}

func (p *ResourcePage[T]) detailCmd(id string) tea.Cmd {
	if p.cfg.Get == nil || p.cfg.Detail == nil {
		return nil
	}
	name := p.cfg.Name
	get := p.cfg.Get
	return func() tea.Msg {
		record, err := get(context.Background(), id)
		return detailMsg[T]{PageName: name, Record: record, Err: err}
	}
}

func (p *ResourcePage[T]) debounceCmd(rev int) tea.Cmd {
	name := p.cfg.Name
	return tea.Tick(p.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{PageName: name, Rev: rev}
	})
}

// Update handles a message. Only messages addressed to this page (or
// raw input while it is the active screen) reach here.
func (p *ResourcePage[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageDataMsg[T]:
		if msg.PageName != p.cfg.Name {
			return nil
		}
		if p.list.Apply(msg.Seq, msg.Result, msg.Err) {
			p.clampCursor()
		}
		return nil

	case detailMsg[T]:
		if msg.PageName != p.cfg.Name {
			return nil
		}
		if msg.Err != nil {
			// Detail fetches are secondary; log and stay on the list.
			p.logger.Warn("detail fetch failed", zap.String("page", p.cfg.Name), zap.Error(msg.Err))
			return nil
		}
		p.detailText = p.cfg.Detail(msg.Record)
		p.detailOpen = true
		return nil

	case mutationDoneMsg:
		if msg.PageName != p.cfg.Name {
			return nil
		}
		p.list.FinishAction(msg.Err)
		if msg.Err == nil {
			// Reconcile against the server rather than patching the row.
			return p.fetchCmd()
		}
		return nil

	case searchDebounceMsg:
		if msg.PageName != p.cfg.Name || !p.list.DebounceCurrent(msg.Rev) {
			return nil
		}
		return p.fetchCmd()

	case submitDoneMsg:
		// A form for this resource finished; reconcile the list.
		if msg.PageName != p.cfg.Name || msg.Err != nil {
			return nil
		}
		return p.fetchCmd()

	case exportDoneMsg:
		return nil

	case widget.ConfirmResultMsg:
		p.modal = nil
		return p.mutateCmd(msg.Action, msg.TargetID, msg.Reason)

	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.MouseMsg:
		return p.handleMouse(msg)
	}
	return nil
}

func (p *ResourcePage[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Overlays capture all input while open.
	if p.modal != nil {
		cmd := p.modal.Update(msg)
		if !p.modal.Open() {
			p.modal = nil
		}
		return cmd
	}
	if p.dropdown != nil {
		return p.handleDropdownKey(msg)
	}
	if p.picker != nil {
		return p.handlePickerKey(msg)
	}
	if p.detailOpen {
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			p.detailOpen = false
		}
		return nil
	}
	if p.searchActive {
		return p.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return nil
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.list.Docs())-1 {
			p.cursor++
		}
		return nil
	case key.Matches(msg, p.keys.PrevPage):
		if !p.list.Page().HasPrev() {
			return nil
		}
		p.list.SetPage(p.list.Query().Page - 1)
		return p.fetchCmd()
	case key.Matches(msg, p.keys.NextPage):
		if !p.list.Page().HasNext() {
			return nil
		}
		p.list.SetPage(p.list.Query().Page + 1)
		return p.fetchCmd()
	case key.Matches(msg, p.keys.Search):
		p.searchActive = true
		p.searchInput = p.list.Query().Search
		return nil
	case key.Matches(msg, p.keys.Refresh):
		return p.fetchCmd()
	case key.Matches(msg, p.keys.ClearAll):
		p.list.ClearFilters()
		p.searchInput = ""
		return p.fetchCmd()
	case key.Matches(msg, p.keys.SortKey):
		return p.cycleSortField()
	case key.Matches(msg, p.keys.SortDir):
		if p.list.Query().SortBy == "" {
			return nil
		}
		p.list.ToggleSort(p.list.Query().SortBy)
		return p.fetchCmd()
	case key.Matches(msg, p.keys.DateRange):
		if !p.cfg.DateFilter {
			return nil
		}
		mode := widget.ApplyDeferred
		if p.cfg.DateImmediate {
			mode = widget.ApplyImmediate
		}
		picker := widget.NewDateRangePicker(mode, time.Now(), p.theme)
		picker.SetRange(p.list.Query().DateRange)
		p.picker = &picker
		return nil
	case key.Matches(msg, p.keys.Actions):
		return p.openDropdown()
	case key.Matches(msg, p.keys.New):
		if !p.cfg.CanCreate {
			return nil
		}
		name := p.cfg.Name
		return func() tea.Msg { return openEditorMsg{PageName: name} }
	case key.Matches(msg, p.keys.ExportCSV):
		return p.exportCmd("csv")
	case key.Matches(msg, p.keys.ExportPDF):
		return p.exportCmd("pdf")
	case key.Matches(msg, p.keys.Dismiss):
		p.list.ClearError()
		return nil
	}

	// Number keys cycle the corresponding filter.
	if n := filterIndex(msg.String()); n >= 0 && n < len(p.cfg.Filters) {
		return p.cycleFilter(n)
	}
	return nil
}

func filterIndex(keyString string) int {
	if len(keyString) != 1 || keyString[0] < '1' || keyString[0] > '9' {
		return -1
	}
	return int(keyString[0] - '1')
}

func (p *ResourcePage[T]) cycleFilter(index int) tea.Cmd {
	def := p.cfg.Filters[index]
	current := p.list.Query().Filters[def.Key]
	if current == "" {
		current = models.FilterAll
	}
	next := def.Options[0]
	for i, option := range def.Options {
		if option == current {
			next = def.Options[(i+1)%len(def.Options)]
			break
		}
	}
	p.list.SetFilters(map[string]string{def.Key: next})
	p.cursor = 0
	return p.fetchCmd()
}

func (p *ResourcePage[T]) cycleSortField() tea.Cmd {
	if len(p.cfg.SortFields) == 0 {
		return nil
	}
	p.sortIndex = (p.sortIndex + 1) % len(p.cfg.SortFields)
	p.list.ToggleSort(p.cfg.SortFields[p.sortIndex])
	return p.fetchCmd()
}

func (p *ResourcePage[T]) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.searchActive = false
		return nil
	case tea.KeyEnter:
		p.searchActive = false
		return nil
	case tea.KeyBackspace:
		if len(p.searchInput) > 0 {
			runes := []rune(p.searchInput)
			p.searchInput = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		p.searchInput += " "
	case tea.KeyRunes:
		p.searchInput += string(msg.Runes)
	default:
		return nil
	}
	p.cursor = 0
	rev := p.list.SetSearch(strings.TrimSpace(p.searchInput))
	return p.debounceCmd(rev)
}

func (p *ResourcePage[T]) handleDropdownKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		p.dropdown = nil
		return nil
	case key.Matches(msg, p.keys.Up):
		p.dropdown.MoveUp()
		return nil
	case key.Matches(msg, p.keys.Down):
		p.dropdown.MoveDown()
		return nil
	case msg.Type == tea.KeyEnter:
		return p.dispatchAction(p.dropdown.Selected())
	}
	return nil
}

func (p *ResourcePage[T]) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	picker := p.picker
	switch msg.String() {
	case "esc":
		p.picker = nil
		return nil
	case "left":
		picker.MoveCursor(-1)
	case "right":
		picker.MoveCursor(1)
	case "up":
		picker.MoveCursor(-7)
	case "down":
		picker.MoveCursor(7)
	case "pgup":
		picker.PrevMonth()
	case "pgdown":
		picker.NextMonth()
	case "x":
		picker.Clear()
		if picker.Mode == widget.ApplyImmediate {
			p.list.SetDateRange(models.DateRange{})
			return p.fetchCmd()
		}
	case "enter":
		committed, done := picker.Pick()
		if done && picker.Mode == widget.ApplyImmediate {
			p.list.SetDateRange(committed)
			p.cursor = 0
			return p.fetchCmd()
		}
	case "s":
		// Deferred mode: commit the draft and search.
		committed := picker.Commit()
		p.picker = nil
		p.list.SetDateRange(committed)
		p.cursor = 0
		return p.fetchCmd()
	}
	return nil
}

func (p *ResourcePage[T]) openDropdown() tea.Cmd {
	docs := p.list.Docs()
	if len(docs) == 0 || p.cursor >= len(docs) {
		return nil
	}
	record := docs[p.cursor]
	actions := p.cfg.Actions(record)
	if len(actions) == 0 {
		return nil
	}
	p.dropdown = &widget.Dropdown{
		Actions:  actions,
		AnchorX:  4,
		AnchorY:  p.cursor + 3,
		RowID:    p.cfg.RowID(record),
		RowLabel: p.cfg.RowLabel(record),
	}
	return nil
}

// dispatchAction routes a chosen menu entry: views open the detail
// pane, destructive or reasoned actions go through the confirmation
// modal, everything else dispatches immediately.
func (p *ResourcePage[T]) dispatchAction(action models.Action) tea.Cmd {
	dropdown := p.dropdown
	p.dropdown = nil

	if action.Kind == models.ActionView {
		return p.detailCmd(dropdown.RowID)
	}
	if action.Kind == models.ActionEdit {
		name := p.cfg.Name
		id := dropdown.RowID
		return func() tea.Msg { return openEditorMsg{PageName: name, ID: id} }
	}
	if action.Destructive || action.NeedsReason {
		prompt := fmt.Sprintf("%s?", action.Label)
		modal := widget.NewConfirmModal(action, dropdown.RowID, dropdown.RowLabel, prompt, p.theme)
		p.modal = &modal
		return nil
	}
	return p.mutateCmd(action.Kind, dropdown.RowID, "")
}

func (p *ResourcePage[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if p.dropdown == nil {
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	// A click outside the dropdown closes it, the way a document-level
	// listener dismisses a browser menu.
	if !p.dropdown.Contains(msg.X, msg.Y) {
		p.dropdown = nil
		return nil
	}
	if index := p.dropdown.ActionAtY(msg.Y); index >= 0 {
		p.dropdown.Cursor = index
		return p.dispatchAction(p.dropdown.Selected())
	}
	return nil
}

func (p *ResourcePage[T]) exportCmd(format string) tea.Cmd {
	if p.cfg.ExportRow == nil {
		return nil
	}
	docs := p.list.Docs()
	if len(docs) == 0 {
		return nil
	}

	columns := make([]string, 0, len(p.cfg.Columns))
	for _, column := range p.cfg.Columns {
		columns = append(columns, column.Title)
	}
	rows := make([]map[string]string, 0, len(docs))
	for _, record := range docs {
		rows = append(rows, p.cfg.ExportRow(record))
	}
	dataset := export.Dataset{Title: p.cfg.Title, Columns: columns, Rows: rows}

	name := p.cfg.Name
	path := filepath.Join(p.exportDir, fmt.Sprintf("%s-%s.%s", name, time.Now().Format("20060102-150405"), format))
	return func() tea.Msg {
		var payload []byte
		var err error
		if format == "pdf" {
			payload, err = export.PDF(dataset)
		} else {
			payload, err = export.CSV(dataset)
		}
		if err == nil {
			err = os.WriteFile(path, payload, 0o644)
		}
		return exportDoneMsg{PageName: name, Path: path, Err: err}
	}
}

func (p *ResourcePage[T]) clampCursor() {
	if p.cursor >= len(p.list.Docs()) {
		p.cursor = len(p.list.Docs()) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// View renders the screen: filter bar, table, and any overlay.
func (p *ResourcePage[T]) View() string {
	var b strings.Builder
	b.WriteString(p.renderFilterBar())
	b.WriteString("\n")

	state := listview.State[T]{
		Docs:            p.list.Docs(),
		Loading:         p.list.Loading(),
		Query:           p.list.Query(),
		Page:            p.list.Page(),
		Cursor:          p.cursor,
		ActionLoadingID: p.list.ActionLoading(),
		Width:           p.width,
	}
	b.WriteString(p.table.View(state))

	base := b.String()

	switch {
	case p.modal != nil:
		return overlayCentered(base, p.modal.Render(), p.width)
	case p.picker != nil:
		return overlayCentered(base, p.renderPickerBox(), p.width)
	case p.detailOpen:
		return overlayCentered(base, p.renderDetailBox(), p.width)
	case p.dropdown != nil:
		return spliceDropdown(base, p.dropdown, p.theme)
	}
	return base
}

func (p *ResourcePage[T]) renderFilterBar() string {
	faint := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(p.theme.NormalText).Bold(true)

	var parts []string
	for index, def := range p.cfg.Filters {
		value := p.list.Query().Filters[def.Key]
		if value == "" {
			value = models.FilterAll
		}
		parts = append(parts, faint.Render(fmt.Sprintf("[%d] %s:", index+1, def.Label))+" "+strong.Render(value))
	}

	if p.cfg.DateFilter {
		r := p.list.Query().DateRange
		label := "any time"
		if !r.IsZero() {
			format := func(t *time.Time) string {
				if t == nil {
					return "…"
				}
				return t.Format("2006-01-02")
			}
			label = format(r.Start) + " → " + format(r.End)
		}
		parts = append(parts, faint.Render("[d] Dates:")+" "+strong.Render(label))
	}

	search := p.list.Query().Search
	if p.searchActive {
		parts = append(parts, faint.Render("[/] Search:")+" "+strong.Render(p.searchInput+"█"))
	} else if search != "" {
		parts = append(parts, faint.Render("[/] Search:")+" "+strong.Render(search))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "   ")
}

func (p *ResourcePage[T]) renderPickerBox() string {
	help := "enter pick · s search · x clear · esc close"
	if p.picker.Mode == widget.ApplyImmediate {
		help = "enter pick · x clear · esc close"
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.BorderColor).
		Padding(1, 2)
	faint := lipgloss.NewStyle().Foreground(p.theme.HelpText)
	return box.Render(p.picker.Render() + "\n\n" + faint.Render(help))
}

func (p *ResourcePage[T]) renderDetailBox() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.BorderColor).
		Padding(1, 2).
		Width(min(p.width-8, 72))
	faint := lipgloss.NewStyle().Foreground(p.theme.HelpText)
	return box.Render(p.detailText + "\n\n" + faint.Render("esc close"))
}

// overlayCentered floats a box over the base view. The base is dimmed
// by simply rendering the box below it; terminal space is cheap and
// true compositing is not worth the complexity here.
func overlayCentered(base, box string, width int) string {
	centered := lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	return base + "\n" + centered
}

// spliceDropdown overlays the dropdown lines onto the base view at its
// anchor, replacing the covered cells.
func spliceDropdown(base string, dropdown *widget.Dropdown, theme widget.Theme) string {
	lines := strings.Split(base, "\n")
	menu := dropdown.Render(theme)
	for i, menuLine := range menu {
		row := dropdown.AnchorY + i
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = spliceLine(lines[row], menuLine, dropdown.AnchorX, dropdown.Width())
	}
	return strings.Join(lines, "\n")
}

// spliceLine replaces width cells of base starting at column x with
// overlay, padding base first if it is too short. Widths are measured
// in terminal cells so styled lines splice correctly.
func spliceLine(base, overlay string, x, width int) string {
	baseWidth := ansi.StringWidth(base)
	if baseWidth < x+width {
		base += strings.Repeat(" ", x+width-baseWidth)
		baseWidth = x + width
	}
	left := ansi.Truncate(base, x, "")
	right := ansi.Cut(base, x+width, baseWidth)
	return left + overlay + right
}
