// Package progress provides the PostgreSQL-backed repository for
// watch-history progress records.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/dbx"
	"github.com/mkalvans/cinetrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = `id, user_id, movie_slug, movie_name, movie_thumb_url, episode, watched_seconds, is_completed, last_watched_at`

// Find returns the record for the composite key, or common.ErrNotFound.
// IS NOT DISTINCT FROM makes a nil episode match the NULL-episode row.
func (r *PostgresRepository) Find(ctx context.Context, userID, movieSlug string, episode *string) (*models.ProgressRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM watch_history
		WHERE user_id = $1 AND movie_slug = $2 AND episode IS NOT DISTINCT FROM $3
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, userID, movieSlug, episode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.ProgressRecord) (*models.ProgressRecord, error) {
	query := `
		INSERT INTO watch_history (user_id, movie_slug, movie_name, movie_thumb_url, episode, watched_seconds, is_completed, last_watched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.MovieSlug, rec.MovieName, rec.MovieThumbUrl,
		rec.Episode, rec.WatchedSeconds, rec.IsCompleted, rec.LastWatchedAt).Scan(&rec.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.ProgressRecord) error {
	query := `
		UPDATE watch_history
		SET movie_name = $2, movie_thumb_url = $3, episode = $4,
		    watched_seconds = $5, is_completed = $6, last_watched_at = $7
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.MovieName, rec.MovieThumbUrl, rec.Episode,
		rec.WatchedSeconds, rec.IsCompleted, rec.LastWatchedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns all records for the account, most recently watched
// first. Equal timestamps fall back to id order so the result is stable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ProgressRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM watch_history
		WHERE user_id = $1
		ORDER BY last_watched_at DESC, id DESC
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByUserAndSlug(ctx context.Context, userID, movieSlug string) ([]*models.ProgressRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM watch_history
		WHERE user_id = $1 AND movie_slug = $2
		ORDER BY last_watched_at DESC, id DESC
	`
	return r.list(ctx, query, userID, movieSlug)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	records := []*models.ProgressRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.ProgressRecord, error) {
	rec := &models.ProgressRecord{}
	err := row.Scan(&rec.ID, &rec.UserID, &rec.MovieSlug, &rec.MovieName,
		&rec.MovieThumbUrl, &rec.Episode, &rec.WatchedSeconds, &rec.IsCompleted,
		&rec.LastWatchedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
