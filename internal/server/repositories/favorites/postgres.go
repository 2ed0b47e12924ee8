// Package favorites provides the PostgreSQL-backed repository for
// bookmarked titles.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/dbx"
	"github.com/mkalvans/cinetrack/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, userID, movieSlug string) (*models.Favorite, error) {
	query := `
		INSERT INTO favorites (user_id, movie_slug)
		VALUES ($1, $2)
		RETURNING id, added_at
	`
	fav := &models.Favorite{UserID: userID, MovieSlug: movieSlug}
	if err := r.db.QueryRowContext(ctx, query, userID, movieSlug).Scan(&fav.ID, &fav.AddedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fav, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, movieSlug string) error {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND movie_slug = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, movieSlug); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	query := `
		SELECT id, user_id, movie_slug, added_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY added_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	favs := []*models.Favorite{}
	for rows.Next() {
		fav := &models.Favorite{}
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.MovieSlug, &fav.AddedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return favs, nil
}
