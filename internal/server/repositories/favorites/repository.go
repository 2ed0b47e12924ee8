package favorites

import (
	"context"

	"github.com/mkalvans/cinetrack/internal/server/models"
)

type Repository interface {
	// Add bookmarks a title; adding a title twice returns
	// common.ErrAlreadyExists.
	Add(ctx context.Context, userID, movieSlug string) (*models.Favorite, error)

	// Remove deletes a bookmark. Removing a non-existent bookmark is not an
	// error.
	Remove(ctx context.Context, userID, movieSlug string) error

	// ListByUser returns the account's bookmarks, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error)
}
