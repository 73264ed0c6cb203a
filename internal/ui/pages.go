package ui

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/ui/listview"
	"github.com/evlive/admin-console/internal/ui/widget"
)

// pageDeps bundles the settings every screen shares.
type pageDeps struct {
	pageSize  int
	debounce  time.Duration
	exportDir string
	theme     widget.Theme
	logger    *zap.Logger
}

func buildPage[T any](deps pageDeps, cfg PageConfig[T]) *ResourcePage[T] {
	return NewResourcePage(cfg, deps.pageSize, deps.debounce, deps.exportDir, deps.theme, deps.logger)
}

const (
	pageEvents       = "events"
	pageUsers        = "users"
	pageAdmins       = "admins"
	pageOrganisers   = "organisers"
	pageTransactions = "transactions"
	pageLocations    = "locations"
	pageActivities   = "activities"
	pageSupport      = "support"
)

func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}

func formatWhen(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func newEventsPage(client *api.EventsClient, deps pageDeps) *ResourcePage[models.Event] {
	theme := deps.theme
	return buildPage(deps, PageConfig[models.Event]{
		Name:  pageEvents,
		Title: "Events",
		Columns: []listview.Column[models.Event]{
			{Title: "Title", Width: 28, SortKey: "title", Render: func(e models.Event) string { return e.Title }},
			{Title: "Organiser", Width: 18, Render: func(e models.Event) string { return e.Organiser }},
			{Title: "Date", Width: 17, SortKey: "date", Render: func(e models.Event) string { return formatWhen(e.Date) }},
			{Title: "Status", Width: 10, Render: func(e models.Event) string {
				return listview.Badge(string(e.Status), theme.EventStatusColor(e.Status))
			}},
			{Title: "Review", Width: 10, Render: func(e models.Event) string {
				return listview.Badge(string(e.AdminStatus), theme.AdminStatusColor(e.AdminStatus))
			}},
			{Title: "Tickets", Width: 12, Render: func(e models.Event) string {
				if e.IsFree() {
					return "Free"
				}
				return formatMoney(e.Prices[0].Amount, e.Prices[0].Currency)
			}},
		},
		Empty: listview.EmptyState{
			Icon:        "◇",
			Message:     "No events found",
			Description: "Adjust the filters or wait for organisers to submit events.",
		},
		Filters: []FilterDef{
			{Key: "status", Label: "Status", Options: []string{models.FilterAll, "Upcoming", "Live", "Past"}},
			{Key: "adminStatus", Label: "Review", Options: []string{models.FilterAll, "Pending", "Approved", "Rejected"}},
		},
		SortFields: []string{"date", "title", "createdAt"},
		DateFilter: true,
		CanCreate:  true,
		RowID:      func(e models.Event) string { return e.ID },
		RowLabel:   func(e models.Event) string { return e.Title },
		Actions:    models.EventActions,
		Detail:     eventDetail,
		ExportRow: func(e models.Event) map[string]string {
			tickets := "Free"
			if !e.IsFree() {
				tickets = formatMoney(e.Prices[0].Amount, e.Prices[0].Currency)
			}
			return map[string]string{
				"Title":     e.Title,
				"Organiser": e.Organiser,
				"Date":      formatWhen(e.Date),
				"Status":    string(e.Status),
				"Review":    string(e.AdminStatus),
				"Tickets":   tickets,
			}
		},
		Fetch: client.List,
		Get:   client.Get,
		Mutate: func(ctx context.Context, action models.ActionKind, id, reason string) (string, error) {
			switch action {
			case models.ActionApprove:
				return "Event approved", client.Approve(ctx, id)
			case models.ActionReject:
				return "Event rejected", client.Reject(ctx, id, reason)
			case models.ActionUnpublish:
				return "Event unpublished", client.Unpublish(ctx, id, reason)
			case models.ActionStartStream:
				return "Stream started", client.StartStream(ctx, id)
			case models.ActionEndStream:
				return "Stream ended", client.EndStream(ctx, id)
			}
			return "", fmt.Errorf("unsupported event action %q", action)
		},
	})
}

func eventDetail(e models.Event) string {
	tickets := "Free"
	if !e.IsFree() {
		tickets = ""
		for i, p := range e.Prices {
			if i > 0 {
				tickets += ", "
			}
			tickets += formatMoney(p.Amount, p.Currency)
		}
	}
	detail := fmt.Sprintf(
		"%s\n\nOrganiser   %s\nCategory    %s\nDate        %s\nStatus      %s / %s\nTickets     %s",
		e.Title, e.Organiser, e.Category, formatWhen(e.Date), e.Status, e.AdminStatus, tickets,
	)
	if e.TestDate != nil {
		detail += "\nTest date   " + formatWhen(*e.TestDate)
	}
	if e.RejectReason != "" {
		detail += "\nRejected    " + e.RejectReason
	}
	if e.Description != "" {
		detail += "\n\n" + e.Description
	}
	return detail
}

// newAccountsPage serves users, admins, and organisers; the three
// screens differ only in title, endpoint, and column labels.
func newAccountsPage(name, title string, client *api.AccountsClient, deps pageDeps) *ResourcePage[models.Account] {
	theme := deps.theme
	return buildPage(deps, PageConfig[models.Account]{
		Name:  name,
		Title: title,
		Columns: []listview.Column[models.Account]{
			{Title: "Name", Width: 22, SortKey: "name", Render: func(a models.Account) string { return a.Name }},
			{Title: "Email", Width: 28, SortKey: "email", Render: func(a models.Account) string { return a.Email }},
			{Title: "Status", Width: 10, Render: func(a models.Account) string {
				text := string(a.Status)
				if a.Locked {
					text = "Locked"
				}
				return listview.Badge(text, theme.AccountStatusColor(a.Status, a.Locked))
			}},
			{Title: "Joined", Width: 12, SortKey: "createdAt", Render: func(a models.Account) string {
				return a.CreatedAt.Format("2006-01-02")
			}},
			{Title: "Last login", Width: 17, Render: func(a models.Account) string {
				if a.LastLogin == nil {
					return "never"
				}
				return formatWhen(*a.LastLogin)
			}},
		},
		Empty: listview.EmptyState{
			Icon:    "◇",
			Message: fmt.Sprintf("No %s found", title),
		},
		Filters: []FilterDef{
			{Key: "status", Label: "Status", Options: []string{models.FilterAll, "Active", "Inactive"}},
			{Key: "locked", Label: "Locked", Options: []string{models.FilterAll, "true", "false"}},
		},
		SortFields: []string{"name", "email", "createdAt"},
		RowID:      func(a models.Account) string { return a.ID },
		RowLabel:   func(a models.Account) string { return a.Name },
		Actions:    models.AccountActions,
		Detail: func(a models.Account) string {
			lastLogin := "never"
			if a.LastLogin != nil {
				lastLogin = formatWhen(*a.LastLogin)
			}
			return fmt.Sprintf(
				"%s\n\nEmail       %s\nPhone       %s\nRole        %s\nStatus      %s\nLocked      %t\nJoined      %s\nLast login  %s",
				a.Name, a.Email, a.Phone, a.Role, a.Status, a.Locked, a.CreatedAt.Format("2006-01-02"), lastLogin,
			)
		},
		ExportRow: func(a models.Account) map[string]string {
			status := string(a.Status)
			if a.Locked {
				status = "Locked"
			}
			lastLogin := "never"
			if a.LastLogin != nil {
				lastLogin = formatWhen(*a.LastLogin)
			}
			return map[string]string{
				"Name":       a.Name,
				"Email":      a.Email,
				"Status":     status,
				"Joined":     a.CreatedAt.Format("2006-01-02"),
				"Last login": lastLogin,
			}
		},
		Fetch: client.List,
		Get:   client.Get,
		Mutate: func(ctx context.Context, action models.ActionKind, id, reason string) (string, error) {
			switch action {
			case models.ActionLock:
				return "Account locked", client.Lock(ctx, id)
			case models.ActionUnlock:
				return "Account unlocked", client.Unlock(ctx, id)
			case models.ActionActivate:
				return "Account activated", client.Activate(ctx, id)
			case models.ActionDeactivate:
				return "Account deactivated", client.Deactivate(ctx, id, reason)
			}
			return "", fmt.Errorf("unsupported account action %q", action)
		},
	})
}

func newTransactionsPage(client *api.TransactionsClient, deps pageDeps) *ResourcePage[models.Transaction] {
	theme := deps.theme
	return buildPage(deps, PageConfig[models.Transaction]{
		Name:  pageTransactions,
		Title: "Transactions",
		Columns: []listview.Column[models.Transaction]{
			{Title: "User", Width: 20, Render: func(t models.Transaction) string { return t.UserName }},
			{Title: "Event", Width: 26, Render: func(t models.Transaction) string { return t.EventName }},
			{Title: "Amount", Width: 12, SortKey: "amount", Render: func(t models.Transaction) string {
				return formatMoney(t.Amount, t.Currency)
			}},
			{Title: "Status", Width: 11, Render: func(t models.Transaction) string {
				return listview.Badge(string(t.Status), theme.TransactionStatusColor(t.Status))
			}},
			{Title: "When", Width: 17, SortKey: "createdAt", Render: func(t models.Transaction) string {
				return formatWhen(t.CreatedAt)
			}},
		},
		Empty: listview.EmptyState{
			Icon:    "◇",
			Message: "No transactions found",
		},
		Filters: []FilterDef{
			{Key: "status", Label: "Status", Options: []string{models.FilterAll, "Pending", "Completed", "Failed", "Refunded"}},
		},
		SortFields: []string{"createdAt", "amount"},
		DateFilter: true,
		RowID:      func(t models.Transaction) string { return t.ID },
		RowLabel: func(t models.Transaction) string {
			return fmt.Sprintf("%s for %s", formatMoney(t.Amount, t.Currency), t.EventName)
		},
		Actions: models.TransactionActions,
		Detail: func(t models.Transaction) string {
			return fmt.Sprintf(
				"Transaction %s\n\nUser        %s\nEvent       %s\nAmount      %s\nStatus      %s\nWhen        %s",
				t.ID, t.UserName, t.EventName, formatMoney(t.Amount, t.Currency), t.Status, formatWhen(t.CreatedAt),
			)
		},
		ExportRow: func(t models.Transaction) map[string]string {
			return map[string]string{
				"User":   t.UserName,
				"Event":  t.EventName,
				"Amount": formatMoney(t.Amount, t.Currency),
				"Status": string(t.Status),
				"When":   formatWhen(t.CreatedAt),
			}
		},
		Fetch: client.List,
		Get:   client.Get,
		Mutate: func(ctx context.Context, action models.ActionKind, id, reason string) (string, error) {
			if action == models.ActionRefund {
				return "Transaction refunded", client.Refund(ctx, id, reason)
			}
			return "", fmt.Errorf("unsupported transaction action %q", action)
		},
	})
}

func newLocationsPage(client *api.LocationsClient, deps pageDeps) *ResourcePage[models.Location] {
	return buildPage(deps, PageConfig[models.Location]{
		Name:  pageLocations,
		Title: "Locations",
		Columns: []listview.Column[models.Location]{
			{Title: "Name", Width: 24, SortKey: "name", Render: func(l models.Location) string { return l.Name }},
			{Title: "Address", Width: 28, Render: func(l models.Location) string { return l.Address }},
			{Title: "City", Width: 16, SortKey: "city", Render: func(l models.Location) string { return l.City }},
			{Title: "Country", Width: 14, Render: func(l models.Location) string { return l.Country }},
			{Title: "Coordinates", Width: 20, Render: func(l models.Location) string {
				return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
			}},
		},
		Empty: listview.EmptyState{
			Icon:        "◇",
			Message:     "No locations yet",
			Description: "Press n to add a venue.",
		},
		SortFields: []string{"name", "city"},
		CanCreate:  true,
		RowID:      func(l models.Location) string { return l.ID },
		RowLabel:   func(l models.Location) string { return l.Name },
		Actions:    models.LocationActions,
		Detail: func(l models.Location) string {
			return fmt.Sprintf(
				"%s\n\nAddress     %s\nCity        %s\nCountry     %s\nLatitude    %.6f\nLongitude   %.6f",
				l.Name, l.Address, l.City, l.Country, l.Latitude, l.Longitude,
			)
		},
		ExportRow: func(l models.Location) map[string]string {
			return map[string]string{
				"Name":        l.Name,
				"Address":     l.Address,
				"City":        l.City,
				"Country":     l.Country,
				"Coordinates": fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude),
			}
		},
		Fetch: client.List,
		Mutate: func(ctx context.Context, action models.ActionKind, id, reason string) (string, error) {
			if action == models.ActionDelete {
				return "Location removed", client.Delete(ctx, id)
			}
			return "", fmt.Errorf("unsupported location action %q", action)
		},
	})
}

func newActivitiesPage(client *api.ActivitiesClient, deps pageDeps) *ResourcePage[models.Activity] {
	return buildPage(deps, PageConfig[models.Activity]{
		Name:  pageActivities,
		Title: "Activity",
		Columns: []listview.Column[models.Activity]{
			{Title: "When", Width: 17, SortKey: "createdAt", Render: func(a models.Activity) string {
				return formatWhen(a.CreatedAt)
			}},
			{Title: "Actor", Width: 18, Render: func(a models.Activity) string { return a.ActorName }},
			{Title: "Action", Width: 16, Render: func(a models.Activity) string { return a.Action }},
			{Title: "Target", Width: 22, Render: func(a models.Activity) string {
				return fmt.Sprintf("%s %s", a.TargetType, a.TargetID)
			}},
			{Title: "Detail", Width: 28, Render: func(a models.Activity) string { return a.Detail }},
		},
		Empty: listview.EmptyState{
			Icon:    "◇",
			Message: "No activity recorded",
		},
		SortFields:    []string{"createdAt"},
		DateFilter:    true,
		DateImmediate: true,
		RowID:         func(a models.Activity) string { return a.ID },
		RowLabel:      func(a models.Activity) string { return a.Action },
		// Audit rows are read-only: no menu beyond what the table shows.
		Actions: func(models.Activity) []models.Action { return nil },
		ExportRow: func(a models.Activity) map[string]string {
			return map[string]string{
				"When":   formatWhen(a.CreatedAt),
				"Actor":  a.ActorName,
				"Action": a.Action,
				"Target": fmt.Sprintf("%s %s", a.TargetType, a.TargetID),
				"Detail": a.Detail,
			}
		},
		Fetch: client.List,
	})
}

func newSupportPage(client *api.SupportClient, deps pageDeps) *ResourcePage[models.SupportTicket] {
	theme := deps.theme
	return buildPage(deps, PageConfig[models.SupportTicket]{
		Name:  pageSupport,
		Title: "Support",
		Columns: []listview.Column[models.SupportTicket]{
			{Title: "Subject", Width: 32, Render: func(t models.SupportTicket) string { return t.Subject }},
			{Title: "Raised by", Width: 18, Render: func(t models.SupportTicket) string { return t.RaisedBy }},
			{Title: "Priority", Width: 9, SortKey: "priority", Render: func(t models.SupportTicket) string {
				return string(t.Priority)
			}},
			{Title: "Status", Width: 11, Render: func(t models.SupportTicket) string {
				return listview.Badge(string(t.Status), theme.TicketStatusColor(t.Status))
			}},
			{Title: "Opened", Width: 17, SortKey: "createdAt", Render: func(t models.SupportTicket) string {
				return formatWhen(t.CreatedAt)
			}},
		},
		Empty: listview.EmptyState{
			Icon:        "◇",
			Message:     "The support queue is empty",
			Description: "Nothing needs attention right now.",
		},
		Filters: []FilterDef{
			{Key: "status", Label: "Status", Options: []string{models.FilterAll, "Open", "InProgress", "Resolved", "Closed"}},
			{Key: "priority", Label: "Priority", Options: []string{models.FilterAll, "High", "Medium", "Low"}},
		},
		SortFields: []string{"createdAt", "priority"},
		RowID:      func(t models.SupportTicket) string { return t.ID },
		RowLabel:   func(t models.SupportTicket) string { return t.Subject },
		Actions:    models.SupportActions,
		Detail: func(t models.SupportTicket) string {
			detail := fmt.Sprintf(
				"%s\n\nRaised by   %s\nPriority    %s\nStatus      %s\nOpened      %s",
				t.Subject, t.RaisedBy, t.Priority, t.Status, formatWhen(t.CreatedAt),
			)
			if t.Body != "" {
				detail += "\n\n" + t.Body
			}
			if t.Resolution != "" {
				detail += "\n\nResolution: " + t.Resolution
			}
			return detail
		},
		ExportRow: func(t models.SupportTicket) map[string]string {
			return map[string]string{
				"Subject":   t.Subject,
				"Raised by": t.RaisedBy,
				"Priority":  string(t.Priority),
				"Status":    string(t.Status),
				"Opened":    formatWhen(t.CreatedAt),
			}
		},
		Fetch: client.List,
		Get:   client.Get,
		Mutate: func(ctx context.Context, action models.ActionKind, id, reason string) (string, error) {
			switch action {
			case models.ActionResolve:
				return "Ticket resolved", client.Resolve(ctx, id, reason)
			case models.ActionClose:
				return "Ticket closed", client.Close(ctx, id)
			}
			return "", fmt.Errorf("unsupported support action %q", action)
		},
	})
}
