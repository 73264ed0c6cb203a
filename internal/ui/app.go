package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/ui/form"
	"github.com/evlive/admin-console/internal/ui/widget"
	"github.com/evlive/admin-console/pkg/config"
	"github.com/evlive/admin-console/pkg/errors"
)

// Clients bundles every resource client over one shared HTTP client.
type Clients struct {
	Auth         *api.AuthClient
	Stats        *api.StatsClient
	Events       *api.EventsClient
	Users        *api.AccountsClient
	Admins       *api.AccountsClient
	Organisers   *api.AccountsClient
	Transactions *api.TransactionsClient
	Locations    *api.LocationsClient
	Activities   *api.ActivitiesClient
	Support      *api.SupportClient
}

// NewClients wires the per-resource clients.
func NewClients(base *api.Client) *Clients {
	return &Clients{
		Auth:         api.NewAuthClient(base),
		Stats:        api.NewStatsClient(base),
		Events:       api.NewEventsClient(base),
		Users:        api.NewAccountsClient(base, models.RoleUser),
		Admins:       api.NewAccountsClient(base, models.RoleAdmin),
		Organisers:   api.NewAccountsClient(base, models.RoleOrganiser),
		Transactions: api.NewTransactionsClient(base),
		Locations:    api.NewLocationsClient(base),
		Activities:   api.NewActivitiesClient(base),
		Support:      api.NewSupportClient(base),
	}
}

// screen is the tabbed list pages' common surface. Every
// ResourcePage instantiation satisfies it.
type screen interface {
	Name() string
	Title() string
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	CapturesText() bool
	Err() string
	ClearError()
}

// editEventMsg delivers the record an edit wizard needs.
type editEventMsg struct {
	Event models.Event
	Err   error
}

// App is the root model: the tab strip, the dashboard, one screen per
// resource, the global banner, and whichever form is open.
type App struct {
	clients  *Clients
	limits   form.UploadLimits
	validate *validator.Validate
	theme    widget.Theme
	logger   *zap.Logger

	dashboard *Dashboard
	pages     []screen
	inited    []bool
	active    int

	banner        widget.Banner
	bannerTimeout time.Duration

	eventForm    *EventFormPage
	locationForm *LocationFormPage

	keys   KeyMap
	width  int
	height int
}

// NewApp assembles the console from configuration and the client set.
func NewApp(cfg *config.Config, clients *Clients, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := widget.DefaultTheme

	deps := pageDeps{
		pageSize:  cfg.Console.PageSize,
		debounce:  cfg.Console.SearchDebounce,
		exportDir: cfg.Console.ExportDir,
		theme:     theme,
		logger:    logger,
	}

	pages := []screen{
		newEventsPage(clients.Events, deps),
		newAccountsPage(pageUsers, "Users", clients.Users, deps),
		newAccountsPage(pageAdmins, "Admins", clients.Admins, deps),
		newAccountsPage(pageOrganisers, "Organisers", clients.Organisers, deps),
		newTransactionsPage(clients.Transactions, deps),
		newLocationsPage(clients.Locations, deps),
		newActivitiesPage(clients.Activities, deps),
		newSupportPage(clients.Support, deps),
	}

	return &App{
		clients: clients,
		limits: form.UploadLimits{
			MaxImageBytes: cfg.Upload.MaxImageBytes,
			MaxVideoBytes: cfg.Upload.MaxVideoBytes,
		},
		validate:      validator.New(),
		theme:         theme,
		logger:        logger,
		dashboard:     NewDashboard(clients.Stats, theme, logger),
		pages:         pages,
		inited:        make([]bool, len(pages)),
		bannerTimeout: cfg.Console.BannerTimeout,
		keys:          DefaultKeyMap,
	}
}

// Init loads the dashboard; list screens fetch lazily on first visit.
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// activePage returns the visible list screen, or nil on the dashboard.
func (a *App) activePage() screen {
	if a.active == 0 {
		return nil
	}
	return a.pages[a.active-1]
}

func (a *App) pageByName(name string) screen {
	for _, page := range a.pages {
		if page.Name() == name {
			return page
		}
	}
	return nil
}

// Update is the single event-loop entry point.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 4
		a.dashboard.SetSize(msg.Width, contentHeight)
		for _, page := range a.pages {
			page.SetSize(msg.Width, contentHeight)
		}
		if a.eventForm != nil {
			a.eventForm.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case widget.BannerExpiredMsg:
		a.banner.Expire(msg)
		return a, nil

	case openEditorMsg:
		return a, a.openEditor(msg)

	case editEventMsg:
		if msg.Err != nil {
			a.banner.ShowError(errors.UserMessage(msg.Err))
			return a, nil
		}
		a.eventForm = NewEventEditPage(a.clients.Events, msg.Event, a.limits, a.theme)
		a.eventForm.SetSize(a.width, a.height-4)
		return a, nil

	case mutationDoneMsg:
		var bannerCmd tea.Cmd
		if msg.Err != nil {
			a.banner.ShowError(errors.UserMessage(msg.Err))
		} else {
			bannerCmd = a.banner.ShowSuccess(msg.Success, a.bannerTimeout)
		}
		return a, tea.Batch(bannerCmd, a.broadcast(msg))

	case submitDoneMsg:
		return a, a.handleSubmitDone(msg)

	case exportDoneMsg:
		if msg.Err != nil {
			a.banner.ShowError(errors.UserMessage(msg.Err))
			return a, nil
		}
		return a, a.banner.ShowSuccess(fmt.Sprintf("Exported to %s", msg.Path), a.bannerTimeout)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if page := a.activePage(); page != nil && a.eventForm == nil && a.locationForm == nil {
			return a, page.Update(msg)
		}
		return a, nil
	}

	// Async results route to their owners by name.
	return a, tea.Batch(a.dashboard.Update(msg), a.broadcast(msg))
}

// broadcast fans a message out to every list screen; each one filters
// by page name.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.pages))
	for _, page := range a.pages {
		if cmd := page.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a *App) openEditor(msg openEditorMsg) tea.Cmd {
	switch msg.PageName {
	case pageEvents:
		if msg.ID == "" {
			a.eventForm = NewEventFormPage(a.clients.Events, a.limits, a.theme)
			a.eventForm.SetSize(a.width, a.height-4)
			return nil
		}
		client := a.clients.Events
		id := msg.ID
		return func() tea.Msg {
			event, err := client.Get(context.Background(), id)
			return editEventMsg{Event: event, Err: err}
		}
	case pageLocations:
		a.locationForm = NewLocationFormPage(a.clients.Locations, a.validate, a.theme)
		return nil
	}
	return nil
}

func (a *App) handleSubmitDone(msg submitDoneMsg) tea.Cmd {
	var cmds []tea.Cmd
	if a.eventForm != nil {
		cmd, done := a.eventForm.Update(msg)
		cmds = append(cmds, cmd)
		if done {
			a.eventForm = nil
		}
	}
	if a.locationForm != nil {
		cmd, done := a.locationForm.Update(msg)
		cmds = append(cmds, cmd)
		if done {
			a.locationForm = nil
		}
	}
	if msg.Err == nil {
		cmds = append(cmds, a.banner.ShowSuccess(msg.Success, a.bannerTimeout))
		cmds = append(cmds, a.broadcast(msg))
	}
	return tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even inside a form.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.eventForm != nil {
		cmd, done := a.eventForm.Update(msg)
		if done {
			a.eventForm = nil
		}
		return a, cmd
	}
	if a.locationForm != nil {
		cmd, done := a.locationForm.Update(msg)
		if done {
			a.locationForm = nil
		}
		return a, cmd
	}

	page := a.activePage()
	capturing := page != nil && page.CapturesText()

	if !capturing {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextTab):
			return a, a.switchTab(1)
		case key.Matches(msg, a.keys.PrevTab):
			return a, a.switchTab(-1)
		case key.Matches(msg, a.keys.Dismiss) && a.banner.Visible():
			a.banner.Dismiss()
			return a, nil
		}
	}

	if page != nil {
		return a, page.Update(msg)
	}
	return a, a.dashboard.Update(msg)
}

func (a *App) switchTab(delta int) tea.Cmd {
	tabs := len(a.pages) + 1
	a.active = ((a.active+delta)%tabs + tabs) % tabs
	if a.active == 0 {
		return nil
	}
	if !a.inited[a.active-1] {
		a.inited[a.active-1] = true
		return a.pages[a.active-1].Init()
	}
	return nil
}

// View renders the tab strip, the banner line, the active screen, and
// the help line.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n")

	if a.banner.Visible() {
		b.WriteString(a.banner.Render(a.theme, a.width))
		b.WriteString("\n")
	}

	switch {
	case a.eventForm != nil:
		b.WriteString(a.eventForm.View())
	case a.locationForm != nil:
		b.WriteString(a.locationForm.View())
	case a.active == 0:
		b.WriteString(a.dashboard.View())
	default:
		page := a.activePage()
		if errText := page.Err(); errText != "" {
			bad := lipgloss.NewStyle().
				Background(a.theme.ErrorBackground).
				Foreground(a.theme.SelectedForeground).
				Width(a.width).
				Padding(0, 1)
			b.WriteString(bad.Render(errText+"  (esc to dismiss)") + "\n")
		}
		b.WriteString(page.View())
	}

	b.WriteString("\n")
	b.WriteString(a.renderHelp())
	return b.String()
}

func (a *App) renderTabs() string {
	activeStyle := lipgloss.NewStyle().
		Background(a.theme.SelectedBackground).
		Foreground(a.theme.SelectedForeground).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(a.theme.FaintText).
		Padding(0, 1)

	titles := []string{"Dashboard"}
	for _, page := range a.pages {
		titles = append(titles, page.Title())
	}

	parts := make([]string, 0, len(titles))
	for i, title := range titles {
		if i == a.active {
			parts = append(parts, activeStyle.Render(title))
		} else {
			parts = append(parts, inactiveStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderHelp() string {
	help := lipgloss.NewStyle().Foreground(a.theme.HelpText)
	if a.eventForm != nil || a.locationForm != nil {
		return help.Render("esc cancel")
	}
	if a.active == 0 {
		return help.Render("tab switch screen · r refresh · q quit")
	}
	return help.Render("tab screen · ↑/↓ row · ←/→ page · / search · 1-9 filters · s sort · enter actions · e/p export · q quit")
}
