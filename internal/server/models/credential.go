package models

import "time"

// AccountCredential is the single active refresh secret for an account.
// Issuing a new secret replaces the row, so at most one refresh secret can
// succeed per account at any time.
type AccountCredential struct {
	UserID        string
	RefreshSecret string
	ExpiresAt     time.Time
	UpdatedAt     time.Time
}
