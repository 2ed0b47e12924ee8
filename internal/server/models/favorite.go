package models

import "time"

// Favorite marks a title an account has bookmarked.
type Favorite struct {
	ID        int64
	UserID    string
	MovieSlug string
	AddedAt   time.Time
}
