package models

import "time"

// DefaultProfileImage is shown when a user has not uploaded their own.
const DefaultProfileImage = "/icons/account_circle_black.svg"

// User represents a registered account
type User struct {
	ID              int64
	Username        string
	Email           string
	PasswordHash    string
	Role            string
	OAuthProvider   string
	OAuthSubject    string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// ProfileImage returns the user's profile image URL or the default icon
func (u *User) ProfileImage() string {
	if u.ProfileImageURL == "" {
		return DefaultProfileImage
	}
	return u.ProfileImageURL
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
