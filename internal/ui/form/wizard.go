package form

import "time"

// WizardStep identifies one screen of the event creation flow.
type WizardStep int

const (
	StepDetails WizardStep = iota
	StepSchedule
	StepMedia
	StepTickets
	StepReview
)

var stepTitles = map[WizardStep]string{
	StepDetails:  "Details",
	StepSchedule: "Schedule",
	StepMedia:    "Media",
	StepTickets:  "Tickets",
	StepReview:   "Review",
}

// Title returns the step's display name.
func (s WizardStep) Title() string { return stepTitles[s] }

// Wizard drives the multi-step event form. Each step validates its own
// fields before the flow advances; the review step re-validates the
// whole draft so nothing invalid slips through an earlier edit.
type Wizard struct {
	Draft  EventDraft
	step   WizardStep
	limits UploadLimits
	now    func() time.Time
}

// NewWizard starts a fresh event creation flow.
func NewWizard(limits UploadLimits, now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	wizard := &Wizard{limits: limits, now: now}
	wizard.Draft.Prices.Add()
	return wizard
}

// NewEditWizard starts a flow pre-filled from an existing event draft.
func NewEditWizard(draft EventDraft, limits UploadLimits, now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	return &Wizard{Draft: draft, limits: limits, now: now}
}

// Step returns the current step.
func (w *Wizard) Step() WizardStep { return w.step }

// stepFields names the draft fields each step owns, used to scope
// validation errors to the visible screen.
func stepFields(step WizardStep) []string {
	switch step {
	case StepDetails:
		return []string{"title", "description", "category"}
	case StepSchedule:
		return []string{"date", "testDate"}
	case StepMedia:
		return []string{"banner", "watermark", "trailer"}
	case StepTickets:
		return []string{"prices"}
	default:
		return nil
	}
}

// StepErrors validates the draft and keeps only the current step's
// messages. Ticket errors include the per-entry fields.
func (w *Wizard) StepErrors() Errors {
	all := w.Draft.Validate(w.now(), w.limits)
	if w.step == StepReview {
		return all
	}
	scoped := Errors{}
	for _, field := range stepFields(w.step) {
		if msg, ok := all[field]; ok {
			scoped[field] = msg
		}
	}
	if w.step == StepTickets {
		for field, msg := range all {
			if len(field) > 7 && field[:7] == "prices[" {
				scoped[field] = msg
			}
		}
	}
	return scoped
}

// Next advances to the following step if the current one validates.
// Returns the blocking errors otherwise.
func (w *Wizard) Next() Errors {
	errs := w.StepErrors()
	if !errs.Valid() {
		return errs
	}
	if w.step < StepReview {
		w.step++
	}
	return Errors{}
}

// Back returns to the previous step. Never blocked: the operator may
// always revisit earlier input.
func (w *Wizard) Back() {
	if w.step > StepDetails {
		w.step--
	}
}

// Submit re-validates everything from the review step. A nil error map
// means the draft is ready for the client.
func (w *Wizard) Submit() Errors {
	return w.Draft.Validate(w.now(), w.limits)
}
