package models

import "time"

// Location is a venue an event can be scheduled at. Coordinates are
// validated client-side before a create request goes out: latitude in
// [-90, 90], longitude in [-180, 180].
type Location struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
}

// Activity is one audit-log row describing an admin action. List-only:
// the console never mutates activities.
type Activity struct {
	ID         string    `json:"_id"`
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName,omitempty"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
