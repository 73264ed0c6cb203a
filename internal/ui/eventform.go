package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/internal/ui/form"
	"github.com/evlive/admin-console/internal/ui/widget"
)

// formField binds one labelled text input to its slot on the draft.
type formField struct {
	key         string
	label       string
	placeholder string
	get         func() string
	set         func(string)
}

// EventFormPage is the multi-step event wizard screen. Fields hold raw
// text until a step advances; the wizard validates the step and blocks
// it on errors.
type EventFormPage struct {
	wizard  *form.Wizard
	client  *api.EventsClient
	eventID string

	// Media paths stay as text until the step advances, when they are
	// probed into file previews.
	mediaPaths map[string]string

	focus      int
	priceFocus int
	errs       form.Errors
	submitting bool

	theme  widget.Theme
	width  int
	height int
}

// NewEventFormPage opens a blank creation wizard.
func NewEventFormPage(client *api.EventsClient, limits form.UploadLimits, theme widget.Theme) *EventFormPage {
	return &EventFormPage{
		wizard:     form.NewWizard(limits, time.Now),
		client:     client,
		mediaPaths: map[string]string{},
		theme:      theme,
	}
}

// NewEventEditPage opens the wizard pre-filled from an existing event.
func NewEventEditPage(client *api.EventsClient, event models.Event, limits form.UploadLimits, theme widget.Theme) *EventFormPage {
	draft := form.EventDraft{
		Title:       event.Title,
		Description: event.Description,
		Category:    event.Category,
		Date:        event.Date.Format("2006-01-02"),
		LocationID:  event.LocationID,
	}
	if event.TestDate != nil {
		draft.TestDate = event.TestDate.Format("2006-01-02")
	}
	for _, price := range event.Prices {
		draft.Prices.Entries = append(draft.Prices.Entries, form.PriceEntry{
			Currency: price.Currency,
			Amount:   fmt.Sprintf("%.2f", price.Amount),
		})
	}
	if event.IsFree() {
		draft.Prices.Free = true
	}
	if len(draft.Prices.Entries) == 0 {
		draft.Prices.Add()
	}
	return &EventFormPage{
		wizard:     form.NewEditWizard(draft, limits, time.Now),
		client:     client,
		eventID:    event.ID,
		mediaPaths: map[string]string{},
		theme:      theme,
	}
}

// Editing reports whether the wizard updates an existing event.
func (p *EventFormPage) Editing() bool { return p.eventID != "" }

// SetSize records the layout box.
func (p *EventFormPage) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// stepInputs lists the editable fields of the current step. The
// tickets and review steps have their own input handling.
func (p *EventFormPage) stepInputs() []formField {
	draft := &p.wizard.Draft
	switch p.wizard.Step() {
	case form.StepDetails:
		return []formField{
			{key: "title", label: "Title", get: func() string { return draft.Title }, set: func(v string) { draft.Title = v }},
			{key: "description", label: "Description", get: func() string { return draft.Description }, set: func(v string) { draft.Description = v }},
			{key: "category", label: "Category", get: func() string { return draft.Category }, set: func(v string) { draft.Category = v }},
		}
	case form.StepSchedule:
		return []formField{
			{key: "date", label: "Event date", placeholder: "YYYY-MM-DD", get: func() string { return draft.Date }, set: func(v string) { draft.Date = v }},
			{key: "testDate", label: "Test date (optional)", placeholder: "YYYY-MM-DD", get: func() string { return draft.TestDate }, set: func(v string) { draft.TestDate = v }},
			{key: "locationId", label: "Location ID (optional)", get: func() string { return draft.LocationID }, set: func(v string) { draft.LocationID = v }},
		}
	case form.StepMedia:
		get := func(slot string) func() string { return func() string { return p.mediaPaths[slot] } }
		set := func(slot string) func(string) { return func(v string) { p.mediaPaths[slot] = v } }
		return []formField{
			{key: "banner", label: "Banner image path", get: get("banner"), set: set("banner")},
			{key: "watermark", label: "Watermark image path", get: get("watermark"), set: set("watermark")},
			{key: "trailer", label: "Trailer video path", get: get("trailer"), set: set("trailer")},
		}
	}
	return nil
}

// Update handles a key press. The returned done flag tells the root
// model the wizard finished or was cancelled.
func (p *EventFormPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		p.submitting = false
		if msg.Err != nil {
			p.errs = form.Errors{"submit": msg.Err.Error()}
			return nil, false
		}
		return nil, true
	case tea.KeyMsg:
		if p.submitting {
			return nil, false
		}
		return p.handleKey(msg)
	}
	return nil, false
}

func (p *EventFormPage) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		if p.wizard.Step() == form.StepDetails {
			return nil, true
		}
		p.wizard.Back()
		p.focus = 0
		p.errs = nil
		return nil, false
	case tea.KeyEnter:
		return p.advance()
	case tea.KeyTab:
		p.moveFocus(1)
		return nil, false
	case tea.KeyShiftTab:
		p.moveFocus(-1)
		return nil, false
	}

	if p.wizard.Step() == form.StepTickets {
		p.handleTicketKey(msg)
		return nil, false
	}
	p.handleTextKey(msg)
	return nil, false
}

func (p *EventFormPage) moveFocus(delta int) {
	var count int
	if p.wizard.Step() == form.StepTickets {
		count = len(p.wizard.Draft.Prices.Entries)
	} else {
		count = len(p.stepInputs())
	}
	if count == 0 {
		return
	}
	p.focus = ((p.focus+delta)%count + count) % count
}

func (p *EventFormPage) handleTextKey(msg tea.KeyMsg) {
	inputs := p.stepInputs()
	if len(inputs) == 0 || p.focus >= len(inputs) {
		return
	}
	field := inputs[p.focus]
	switch msg.Type {
	case tea.KeyBackspace:
		value := []rune(field.get())
		if len(value) > 0 {
			field.set(string(value[:len(value)-1]))
		}
	case tea.KeySpace:
		field.set(field.get() + " ")
	case tea.KeyRunes:
		field.set(field.get() + string(msg.Runes))
	}
}

func (p *EventFormPage) handleTicketKey(msg tea.KeyMsg) {
	prices := &p.wizard.Draft.Prices
	if p.focus >= len(prices.Entries) && len(prices.Entries) > 0 {
		p.focus = len(prices.Entries) - 1
	}

	switch msg.String() {
	case "ctrl+a":
		if prices.Add() {
			p.focus = len(prices.Entries) - 1
		}
		return
	case "ctrl+d":
		if len(prices.Entries) > 1 {
			prices.Remove(p.focus)
			if p.focus >= len(prices.Entries) {
				p.focus = len(prices.Entries) - 1
			}
		}
		return
	case "ctrl+f":
		prices.Free = !prices.Free
		return
	case "left", "right":
		p.cycleCurrency(msg.String() == "right")
		return
	}

	if len(prices.Entries) == 0 {
		return
	}
	entry := &prices.Entries[p.focus]
	switch msg.Type {
	case tea.KeyBackspace:
		if len(entry.Amount) > 0 {
			entry.Amount = entry.Amount[:len(entry.Amount)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				entry.Amount += string(r)
			}
		}
	}
}

// cycleCurrency steps the focused entry through the currencies no
// other entry holds.
func (p *EventFormPage) cycleCurrency(forward bool) {
	prices := &p.wizard.Draft.Prices
	if len(prices.Entries) == 0 {
		return
	}
	entry := &prices.Entries[p.focus]
	available := prices.Available(p.focus)
	if len(available) < 2 {
		return
	}
	current := 0
	for i, currency := range available {
		if currency == entry.Currency {
			current = i
			break
		}
	}
	step := 1
	if !forward {
		step = len(available) - 1
	}
	entry.Currency = available[(current+step)%len(available)]
}

func (p *EventFormPage) advance() (tea.Cmd, bool) {
	p.errs = nil
	if p.wizard.Step() == form.StepMedia {
		if !p.probeMedia() {
			return nil, false
		}
	}
	if p.wizard.Step() == form.StepReview {
		return p.submit(), false
	}
	p.errs = p.wizard.Next()
	if p.errs.Valid() {
		p.focus = 0
		p.errs = nil
	}
	return nil, false
}

// probeMedia turns the entered paths into file previews, carrying stat
// or extension failures into the step's error set.
func (p *EventFormPage) probeMedia() bool {
	draft := &p.wizard.Draft
	ok := true
	slots := []struct {
		key    string
		target **form.FilePreview
	}{
		{"banner", &draft.Banner},
		{"watermark", &draft.Watermark},
		{"trailer", &draft.Trailer},
	}
	for _, slot := range slots {
		path := strings.TrimSpace(p.mediaPaths[slot.key])
		if path == "" {
			*slot.target = nil
			continue
		}
		preview, err := form.NewFilePreview(path)
		if err != nil {
			if p.errs == nil {
				p.errs = form.Errors{}
			}
			p.errs[slot.key] = err.Error()
			ok = false
			continue
		}
		*slot.target = preview
	}
	return ok
}

func (p *EventFormPage) submit() tea.Cmd {
	errs := p.wizard.Submit()
	if !errs.Valid() {
		p.errs = errs
		return nil
	}
	p.errs = nil
	p.submitting = true

	draft := &p.wizard.Draft
	payload := draft.Payload()
	client := p.client
	eventID := p.eventID
	uploads, err := draft.Uploads()
	if err != nil {
		p.submitting = false
		p.errs = form.Errors{"submit": err.Error()}
		return nil
	}
	return func() tea.Msg {
		var submitErr error
		success := "Event created"
		if eventID != "" {
			_, submitErr = client.Update(context.Background(), eventID, payload, uploads)
			success = "Event updated"
		} else {
			_, submitErr = client.Create(context.Background(), payload, uploads)
		}
		return submitDoneMsg{PageName: pageEvents, Success: success, Err: submitErr}
	}
}

// View renders the wizard: step trail, current step's fields, inline
// errors, and the key help line.
func (p *EventFormPage) View() string {
	faint := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(p.theme.NormalText).Bold(true)
	bad := lipgloss.NewStyle().Foreground(p.theme.StatusBad)
	help := lipgloss.NewStyle().Foreground(p.theme.HelpText)

	var b strings.Builder

	title := "New event"
	if p.Editing() {
		title = "Edit event"
	}
	b.WriteString(strong.Render(title) + "  " + faint.Render(p.stepTrail()) + "\n\n")

	switch p.wizard.Step() {
	case form.StepTickets:
		b.WriteString(p.renderTickets(faint, strong, bad))
	case form.StepReview:
		b.WriteString(p.renderReview(faint, strong))
	default:
		b.WriteString(p.renderInputs(faint, strong, bad))
	}

	if msg := p.errs["submit"]; msg != "" {
		b.WriteString("\n" + bad.Render(msg) + "\n")
	}
	if p.submitting {
		b.WriteString("\n" + faint.Render("Submitting…") + "\n")
	}

	b.WriteString("\n" + help.Render(p.helpLine()))
	return b.String()
}

func (p *EventFormPage) stepTrail() string {
	steps := []form.WizardStep{form.StepDetails, form.StepSchedule, form.StepMedia, form.StepTickets, form.StepReview}
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		name := step.Title()
		if step == p.wizard.Step() {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " › ")
}

func (p *EventFormPage) renderInputs(faint, strong, bad lipgloss.Style) string {
	var b strings.Builder
	for i, field := range p.stepInputs() {
		marker := "  "
		if i == p.focus {
			marker = "> "
		}
		value := field.get()
		if value == "" && field.placeholder != "" {
			value = faint.Render(field.placeholder)
		} else if i == p.focus {
			value = strong.Render(value + "█")
		}
		b.WriteString(fmt.Sprintf("%s%-24s %s\n", marker, field.label, value))
		if msg := p.errs[field.key]; msg != "" {
			b.WriteString("  " + bad.Render(msg) + "\n")
		}
	}
	return b.String()
}

func (p *EventFormPage) renderTickets(faint, strong, bad lipgloss.Style) string {
	prices := &p.wizard.Draft.Prices
	var b strings.Builder

	freeMark := "[ ]"
	if prices.Free {
		freeMark = "[x]"
	}
	b.WriteString(fmt.Sprintf("  %s Free event (ctrl+f)\n\n", freeMark))

	for i, entry := range prices.Entries {
		marker := "  "
		amount := entry.Amount
		if i == p.focus {
			marker = "> "
			amount = strong.Render(amount + "█")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, entry.Currency, amount))
		if msg := p.errs[fmt.Sprintf("prices[%d]", i)]; msg != "" {
			b.WriteString("  " + bad.Render(msg) + "\n")
		}
	}
	if msg := p.errs["prices"]; msg != "" {
		b.WriteString("\n  " + bad.Render(msg) + "\n")
	}
	return b.String()
}

func (p *EventFormPage) renderReview(faint, strong lipgloss.Style) string {
	draft := &p.wizard.Draft
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = faint.Render("(none)")
		}
		b.WriteString(fmt.Sprintf("  %-14s %s\n", label, value))
	}
	row("Title", draft.Title)
	row("Category", draft.Category)
	row("Date", draft.Date)
	row("Test date", draft.TestDate)
	row("Location", draft.LocationID)

	tickets := "Free"
	if !draft.Prices.Free {
		parts := make([]string, 0, len(draft.Prices.Entries))
		for _, entry := range draft.Prices.Entries {
			parts = append(parts, entry.Currency+" "+entry.Amount)
		}
		tickets = strings.Join(parts, ", ")
	}
	row("Tickets", tickets)

	media := make([]string, 0, 3)
	for _, preview := range []*form.FilePreview{draft.Banner, draft.Watermark, draft.Trailer} {
		if preview != nil {
			media = append(media, preview.Label())
		}
	}
	row("Media", strings.Join(media, ", "))
	return b.String()
}

func (p *EventFormPage) helpLine() string {
	switch p.wizard.Step() {
	case form.StepTickets:
		return "tab focus · ←/→ currency · ctrl+a add · ctrl+d remove · ctrl+f free · enter next · esc back"
	case form.StepReview:
		return "enter submit · esc back"
	default:
		return "tab focus · enter next · esc back"
	}
}
