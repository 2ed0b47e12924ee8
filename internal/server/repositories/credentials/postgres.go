// Package credentials provides a PostgreSQL-backed repository for the
// rotating refresh secrets used in the authentication flow.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/dbx"
	"github.com/mkalvans/cinetrack/internal/server/models"
)

// PostgresRepository implements the credential store over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert replaces the account's refresh secret with an expiry time of
// now+validity. The ON CONFLICT clause is what enforces the single active
// secret per account.
func (r *PostgresRepository) Upsert(ctx context.Context, userID string, secret string, validity time.Duration) error {
	query := `
		INSERT INTO account_credentials (user_id, refresh_secret, expires_at, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE
		SET refresh_secret = EXCLUDED.refresh_secret,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, secret, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

// Get returns the credential row for the given account.
// If not found, it returns common.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.AccountCredential, error) {
	query := `
		SELECT user_id, refresh_secret, expires_at, updated_at
		FROM account_credentials
		WHERE user_id = $1
	`
	cred := &models.AccountCredential{}
	if err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&cred.UserID, &cred.RefreshSecret, &cred.ExpiresAt, &cred.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}
