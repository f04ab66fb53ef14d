// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a row of the users table. Password holds the bcrypt digest and
// never leaves the repository and service layers; use Account for anything
// returned to a caller.
type User struct {
	ID             int64
	UserName       string
	Email          string
	Password       string
	ProfilePicture string
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Account is the sanitized representation of a User.
type Account struct {
	ID             int64     `json:"id"`
	UserName       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Sanitize drops the password digest.
func (u *User) Sanitize() Account {
	return Account{
		ID:             u.ID,
		UserName:       u.UserName,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// SanitizeAll maps Sanitize over users.
func SanitizeAll(users []*User) []Account {
	out := make([]Account, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitize())
	}
	return out
}

// UserPatch lists the columns of a partial update. Nil means "leave as is".
type UserPatch struct {
	UserName       *string
	Email          *string
	ProfilePicture *string
	Password       *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.UserName == nil && p.Email == nil && p.ProfilePicture == nil && p.Password == nil
}

// AccountPage is one page of the account listing.
type AccountPage struct {
	Users          []Account `json:"users"`
	TotalUsers     int64     `json:"totalUsers"`
	LastMonthUsers int64     `json:"lastMonthUsers"`
}
