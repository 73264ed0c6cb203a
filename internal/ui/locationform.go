package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/evlive/admin-console/internal/api"
	"github.com/evlive/admin-console/internal/ui/form"
	"github.com/evlive/admin-console/internal/ui/widget"
)

// LocationFormPage is the single-step add-venue form.
type LocationFormPage struct {
	draft      form.LocationDraft
	client     *api.LocationsClient
	validate   *validator.Validate
	focus      int
	errs       form.Errors
	submitting bool
	theme      widget.Theme
}

// NewLocationFormPage opens a blank venue form.
func NewLocationFormPage(client *api.LocationsClient, validate *validator.Validate, theme widget.Theme) *LocationFormPage {
	if validate == nil {
		validate = validator.New()
	}
	return &LocationFormPage{client: client, validate: validate, theme: theme}
}

func (p *LocationFormPage) fields() []formField {
	draft := &p.draft
	return []formField{
		{key: "name", label: "Name", get: func() string { return draft.Name }, set: func(v string) { draft.Name = v }},
		{key: "address", label: "Address", get: func() string { return draft.Address }, set: func(v string) { draft.Address = v }},
		{key: "city", label: "City", get: func() string { return draft.City }, set: func(v string) { draft.City = v }},
		{key: "country", label: "Country", get: func() string { return draft.Country }, set: func(v string) { draft.Country = v }},
		{key: "latitude", label: "Latitude", placeholder: "-90 to 90", get: func() string { return draft.Latitude }, set: func(v string) { draft.Latitude = v }},
		{key: "longitude", label: "Longitude", placeholder: "-180 to 180", get: func() string { return draft.Longitude }, set: func(v string) { draft.Longitude = v }},
	}
}

// Update handles a key press. The done flag tells the root model the
// form finished or was cancelled.
func (p *LocationFormPage) Update(msg tea.Msg) (tea.Cmd, bool) {
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

func (p *LocationFormPage) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	fields := p.fields()
	switch msg.Type {
	case tea.KeyEsc:
		return nil, true
	case tea.KeyEnter:
		return p.submit(), false
	case tea.KeyTab:
		p.focus = (p.focus + 1) % len(fields)
		return nil, false
	case tea.KeyShiftTab:
		p.focus = (p.focus + len(fields) - 1) % len(fields)
		return nil, false
	case tea.KeyBackspace:
		field := fields[p.focus]
		value := []rune(field.get())
		if len(value) > 0 {
			field.set(string(value[:len(value)-1]))
		}
		return nil, false
	case tea.KeySpace:
		fields[p.focus].set(fields[p.focus].get() + " ")
		return nil, false
	case tea.KeyRunes:
		fields[p.focus].set(fields[p.focus].get() + string(msg.Runes))
		return nil, false
	}
	return nil, false
}

func (p *LocationFormPage) submit() tea.Cmd {
	p.errs = p.draft.Validate(p.validate)
	if !p.errs.Valid() {
		return nil
	}
	p.submitting = true
	payload := p.draft.Payload()
	client := p.client
	return func() tea.Msg {
		_, err := client.Create(context.Background(), payload)
		return submitDoneMsg{PageName: pageLocations, Success: "Location added", Err: err}
	}
}

// View renders the form with inline validation messages.
func (p *LocationFormPage) View() string {
	faint := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(p.theme.NormalText).Bold(true)
	bad := lipgloss.NewStyle().Foreground(p.theme.StatusBad)
	help := lipgloss.NewStyle().Foreground(p.theme.HelpText)

	var b strings.Builder
	b.WriteString(strong.Render("New location") + "\n\n")
	for i, field := range p.fields() {
		marker := "  "
		value := field.get()
		if value == "" && field.placeholder != "" {
			value = faint.Render(field.placeholder)
		} else if i == p.focus {
			value = strong.Render(value + "█")
		}
		if i == p.focus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s\n", marker, field.label, value))
		if msg := p.errs[field.key]; msg != "" {
			b.WriteString("  " + bad.Render(msg) + "\n")
		}
	}
	if msg := p.errs["submit"]; msg != "" {
		b.WriteString("\n" + bad.Render(msg) + "\n")
	}
	if p.submitting {
		b.WriteString("\n" + faint.Render("Submitting…") + "\n")
	}
	b.WriteString("\n" + help.Render("tab focus · enter submit · esc cancel"))
	return b.String()
}
