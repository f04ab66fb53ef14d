package api

import "time"

// Account is a user without credentials.
type Account struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

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

type Registration struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	EventID      int64     `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type Registrant struct {
	Account
	RegisteredAt time.Time `json:"registeredAt"`
}

// Empty is the acknowledgement of calls without a result.
type Empty struct{}

// Page selects a window of a listing. Order "asc" sorts oldest first.
type Page struct {
	StartIndex int    `json:"startIndex,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Order      string `json:"order,omitempty"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	Account      Account `json:"account"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type IDRequest struct {
	ID int64 `json:"id"`
}

type AccountResponse struct {
	Account Account `json:"account"`
}

// UpdateAccountRequest carries only the fields to change.
type UpdateAccountRequest struct {
	ID             int64   `json:"id"`
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Password       *string `json:"password,omitempty"`
}

type ListAccountsRequest struct {
	Page
}

type ListAccountsResponse struct {
	Users          []Account `json:"users"`
	TotalUsers     int64     `json:"totalUsers"`
	LastMonthUsers int64     `json:"lastMonthUsers"`
}

type CreateEventRequest struct {
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Image           string    `json:"image,omitempty"`
	Category        string    `json:"category,omitempty"`
	Location        string    `json:"location"`
	Datetime        time.Time `json:"datetime"`
	MaxRegistration int       `json:"maxRegistration,omitempty"`
}

type UpdateEventRequest struct {
	ID              int64      `json:"id"`
	Title           *string    `json:"title,omitempty"`
	Content         *string    `json:"content,omitempty"`
	Image           *string    `json:"image,omitempty"`
	Category        *string    `json:"category,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Datetime        *time.Time `json:"datetime,omitempty"`
	MaxRegistration *int       `json:"maxRegistration,omitempty"`
}

// GetEventRequest looks an event up by ID, or by Slug when ID is zero.
type GetEventRequest struct {
	ID   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

type EventResponse struct {
	Event Event `json:"event"`
}

type ListEventsRequest struct {
	Page
	UserID     int64  `json:"userId,omitempty"`
	Category   string `json:"category,omitempty"`
	Slug       string `json:"slug,omitempty"`
	SearchTerm string `json:"searchTerm,omitempty"`
}

type ListEventsResponse struct {
	Events          []Event `json:"events"`
	TotalEvents     int64   `json:"totalEvents"`
	LastMonthEvents int64   `json:"lastMonthEvents"`
}

type RegistrationResponse struct {
	Registration Registration `json:"registration"`
}

type RegistrantsResponse struct {
	Registrants []Registrant `json:"registrants"`
}

type CoordinatorRequest struct {
	EventID int64 `json:"eventId"`
	UserID  int64 `json:"userId"`
}

type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type UploadURLRequest struct {
	Kind string `json:"kind"`
}

type UploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type DownloadURLRequest struct {
	Key string `json:"key"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}
