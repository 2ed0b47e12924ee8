package models

import "time"

// User is an account row. PasswordHash is a bcrypt hash; AvatarUrl is
// optional profile metadata echoed back in auth responses.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarUrl    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
