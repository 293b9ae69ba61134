package models

import "time"

// InfoPage is an admin-managed information hub page
type InfoPage struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	Body        string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
