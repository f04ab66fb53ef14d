package models

import "time"

// Registration links a user to an event they signed up for. The pair
// (UserID, EventID) is unique.
type Registration struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	EventID      int64     `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Registrant is a sanitized account together with its registration time.
type Registrant struct {
	Account
	RegisteredAt time.Time `json:"registeredAt"`
}
