// Package credentials declares the repository contract for the single active
// refresh secret held per account.
package credentials

import (
	"context"
	"time"

	"github.com/mkalvans/cinetrack/internal/server/models"
)

// Repository manages per-account refresh-secret state. There is at most one
// row per account; Upsert replaces it, which is what invalidates the
// previously issued secret.
type Repository interface {
	// Upsert stores secret for userID with an expiry of now+validity,
	// replacing any existing secret for the account.
	Upsert(ctx context.Context, userID string, secret string, validity time.Duration) error

	// Get returns the account's current credential state, or a not-found
	// error when none was ever issued.
	Get(ctx context.Context, userID string) (*models.AccountCredential, error)
}
