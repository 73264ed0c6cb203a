package models

import "time"

// EventStatus is the time-derived lifecycle of an event. The server
// computes it from the event date and any live stream session.
type EventStatus string

const (
	EventPast     EventStatus = "Past"
	EventLive     EventStatus = "Live"
	EventUpcoming EventStatus = "Upcoming"
)

// AdminStatus is the moderation state an administrator controls.
type AdminStatus string

const (
	AdminPending  AdminStatus = "Pending"
	AdminApproved AdminStatus = "Approved"
	AdminRejected AdminStatus = "Rejected"
)

// Price is one ticket price in a single currency. An event carries one
// entry per currency; amount zero across all entries means a free event.
type Price struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Event is a streamed or in-person event owned by an organiser.
type Event struct {
	ID           string      `json:"_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Date         time.Time   `json:"date"`
	TestDate     *time.Time  `json:"testDate,omitempty"`
	Status       EventStatus `json:"status"`
	AdminStatus  AdminStatus `json:"adminStatus"`
	RejectReason string      `json:"rejectReason,omitempty"`
	Prices       []Price     `json:"prices"`
	OrganiserID  string      `json:"organiserId"`
	Organiser    string      `json:"organiserName,omitempty"`
	LocationID   string      `json:"locationId,omitempty"`
	BannerURL    string      `json:"bannerUrl,omitempty"`
	WatermarkURL string      `json:"watermarkUrl,omitempty"`
	TrailerURL   string      `json:"trailerUrl,omitempty"`
	StreamLive   bool        `json:"streamLive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// IsFree reports whether every price entry is zero.
func (e Event) IsFree() bool {
	for _, p := range e.Prices {
		if p.Amount > 0 {
			return false
		}
	}
	return true
}
