package models

import "time"

// ProgressRecord is the durable state of how far an account has watched a
// specific episode of a title. Episode is nil for standalone movies and
// holds a normalized label otherwise; (UserID, MovieSlug, Episode) is unique.
type ProgressRecord struct {
	ID             int64
	UserID         string
	MovieSlug      string
	MovieName      string
	MovieThumbUrl  string
	Episode        *string
	WatchedSeconds int
	IsCompleted    bool
	LastWatchedAt  time.Time
}
