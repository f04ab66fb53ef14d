package models

import "time"

// Event is a scheduled gathering created by exactly one user.
type Event struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Image           string    `json:"image"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	Datetime        time.Time `json:"datetime"`
	MaxRegistration int       `json:"maxRegistration"`
	Slug            string    `json:"slug"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EventPatch lists the columns of a partial event update.
type EventPatch struct {
	Title           *string
	Content         *string
	Image           *string
	Category        *string
	Location        *string
	Datetime        *time.Time
	MaxRegistration *int
	Slug            *string
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Image == nil && p.Category == nil &&
		p.Location == nil && p.Datetime == nil && p.MaxRegistration == nil && p.Slug == nil
}

// EventFilter narrows an event listing. Zero values mean "any".
type EventFilter struct {
	UserID     int64
	Category   string
	Slug       string
	SearchTerm string
	Pagination Pagination
}

// EventPage is one page of the event listing.
type EventPage struct {
	Events          []*Event `json:"events"`
	TotalEvents     int64    `json:"totalEvents"`
	LastMonthEvents int64    `json:"lastMonthEvents"`
}
