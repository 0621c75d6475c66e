package model

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Favorite is a denormalized snapshot of an article plus its summary at the
// time the user saved it, not a live reference into a result set.
type Favorite struct {
	ID          int64
	UserID      int64
	Title       string
	PublishedAt string
	Author      string
	Summary     string
	Description string
	ImageURL    string
	URL         string
	CreatedAt   time.Time
}
