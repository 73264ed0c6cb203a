package models

// ActionKind names a row-level mutation the console can request.
type ActionKind string

const (
	ActionView        ActionKind = "view"
	ActionEdit        ActionKind = "edit"
	ActionApprove     ActionKind = "approve"
	ActionReject      ActionKind = "reject"
	ActionUnpublish   ActionKind = "unpublish"
	ActionStartStream ActionKind = "start-stream"
	ActionEndStream   ActionKind = "end-stream"
	ActionLock        ActionKind = "lock"
	ActionUnlock      ActionKind = "unlock"
	ActionActivate    ActionKind = "activate"
	ActionDeactivate  ActionKind = "deactivate"
	ActionRefund      ActionKind = "refund"
	ActionResolve     ActionKind = "resolve"
	ActionClose       ActionKind = "close"
	ActionDelete      ActionKind = "delete"
)

// Action is one entry in a row's action menu.
type Action struct {
	Kind ActionKind
	// Label is the menu text shown to the operator.
	Label string
	// Destructive actions get a confirmation modal before dispatch.
	Destructive bool
	// NeedsReason makes the confirmation modal demand a non-empty
	// free-text reason before it can be confirmed.
	NeedsReason bool
}

// EventActions is the decision table mapping an event's
// (status, adminStatus, streamLive) triple to its ordered action menu.
// Pending events can be moderated; approved events can run streams or
// be unpublished; rejected events can be re-approved.
func EventActions(e Event) []Action {
	actions := []Action{{Kind: ActionView, Label: "View details"}}

	switch e.AdminStatus {
	case AdminPending:
		actions = append(actions,
			Action{Kind: ActionApprove, Label: "Approve"},
			Action{Kind: ActionReject, Label: "Reject", Destructive: true, NeedsReason: true},
		)
	case AdminApproved:
		if e.Status != EventPast {
			if e.StreamLive {
				actions = append(actions, Action{Kind: ActionEndStream, Label: "End stream", Destructive: true})
			} else {
				actions = append(actions, Action{Kind: ActionStartStream, Label: "Start stream"})
			}
		}
		actions = append(actions, Action{Kind: ActionUnpublish, Label: "Unpublish", Destructive: true, NeedsReason: true})
	case AdminRejected:
		actions = append(actions, Action{Kind: ActionApprove, Label: "Re-approve"})
	}

	actions = append(actions, Action{Kind: ActionEdit, Label: "Edit"})
	return actions
}

// AccountActions maps an account's (status, locked) pair to its menu.
// Lock state and active state are orthogonal toggles.
func AccountActions(a Account) []Action {
	actions := []Action{{Kind: ActionView, Label: "View details"}}

	if a.Locked {
		actions = append(actions, Action{Kind: ActionUnlock, Label: "Unlock"})
	} else {
		actions = append(actions, Action{Kind: ActionLock, Label: "Lock", Destructive: true})
	}

	if a.Status == AccountActive {
		actions = append(actions, Action{Kind: ActionDeactivate, Label: "Deactivate", Destructive: true, NeedsReason: true})
	} else {
		actions = append(actions, Action{Kind: ActionActivate, Label: "Activate"})
	}

	return actions
}

// TransactionActions allows refunding completed transactions only.
func TransactionActions(t Transaction) []Action {
	actions := []Action{{Kind: ActionView, Label: "View details"}}
	if t.Status == TxnCompleted {
		actions = append(actions, Action{Kind: ActionRefund, Label: "Refund", Destructive: true, NeedsReason: true})
	}
	return actions
}

// LocationActions allows removal of any venue.
func LocationActions(Location) []Action {
	return []Action{
		{Kind: ActionView, Label: "View details"},
		{Kind: ActionDelete, Label: "Remove", Destructive: true},
	}
}

// SupportActions walks the ticket workflow forward: open or in-progress
// tickets resolve (with a resolution note), resolved tickets close.
func SupportActions(t SupportTicket) []Action {
	actions := []Action{{Kind: ActionView, Label: "View details"}}
	switch t.Status {
	case TicketOpen, TicketInProgress:
		actions = append(actions, Action{Kind: ActionResolve, Label: "Resolve", NeedsReason: true})
	case TicketResolved:
		actions = append(actions, Action{Kind: ActionClose, Label: "Close"})
	}
	return actions
}
