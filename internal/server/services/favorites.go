package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/server/models"
	"github.com/mkalvans/cinetrack/internal/server/repositories/repomanager"
)

// FavoriteService manages the account's bookmarked titles.
type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(db *sql.DB, m repomanager.RepositoryManager) *FavoriteService {
	return &FavoriteService{db: db, repomanager: m}
}

// Add bookmarks a title. A duplicate yields common.ErrAlreadyExists.
func (s *FavoriteService) Add(ctx context.Context, userID, movieSlug string) (*models.Favorite, error) {
	if userID == "" || movieSlug == "" {
		return nil, common.ErrValidation
	}
	fav, err := s.repomanager.Favorites(s.db).Add(ctx, userID, movieSlug)
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove deletes a bookmark; removing one that does not exist is not an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, movieSlug string) error {
	if userID == "" || movieSlug == "" {
		return common.ErrValidation
	}
	if err := s.repomanager.Favorites(s.db).Remove(ctx, userID, movieSlug); err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	return nil
}

// List returns the account's bookmarks, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*models.Favorite, error) {
	if userID == "" {
		return nil, common.ErrValidation
	}
	favs, err := s.repomanager.Favorites(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	return favs, nil
}
