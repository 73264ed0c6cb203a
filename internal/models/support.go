package models

import "time"

// TicketStatus is the support ticket workflow state.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "InProgress"
	TicketResolved   TicketStatus = "Resolved"
	TicketClosed     TicketStatus = "Closed"
)

// TicketPriority orders the support queue.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "Low"
	PriorityMedium TicketPriority = "Medium"
	PriorityHigh   TicketPriority = "High"
)

// SupportTicket is a user-raised issue handled from the console.
type SupportTicket struct {
	ID          string         `json:"_id"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	RaisedByID  string         `json:"raisedById"`
	RaisedBy    string         `json:"raisedByName,omitempty"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	Resolution  string         `json:"resolution,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
