package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/server/models"
)

type fakeFavoritesRepo struct {
	items  []*models.Favorite
	nextID int64

	addErr  error
	listErr error
	remErr  error
}

func (f *fakeFavoritesRepo) Add(ctx context.Context, userID, movieSlug string) (*models.Favorite, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	for _, fav := range f.items {
		if fav.UserID == userID && fav.MovieSlug == movieSlug {
			return nil, common.ErrAlreadyExists
		}
	}
	f.nextID++
	fav := &models.Favorite{ID: f.nextID, UserID: userID, MovieSlug: movieSlug, AddedAt: time.Now()}
	f.items = append(f.items, fav)
	return fav, nil
}

func (f *fakeFavoritesRepo) Remove(ctx context.Context, userID, movieSlug string) error {
	if f.remErr != nil {
		return f.remErr
	}
	for i, fav := range f.items {
		if fav.UserID == userID && fav.MovieSlug == movieSlug {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFavoritesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Favorite
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func newFavoriteService(t *testing.T) (*FavoriteService, *fakeFavoritesRepo) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	repo := &fakeFavoritesRepo{}
	return NewFavoriteService(db, &fakeRepoManager{f: repo}), repo
}

func TestFavorites_AddAndList(t *testing.T) {
	s, _ := newFavoriteService(t)
	ctx := context.Background()

	for _, slug := range []string{"alien", "blade-runner"} {
		if _, err := s.Add(ctx, "u1", slug); err != nil {
			t.Fatalf("Add(%q) error: %v", slug, err)
		}
	}

	got, err := s.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(got))
	}
	// Newest first.
	if got[0].MovieSlug != "blade-runner" || got[1].MovieSlug != "alien" {
		t.Fatalf("unexpected order: %q, %q", got[0].MovieSlug, got[1].MovieSlug)
	}
}

func TestFavorites_AddDuplicate(t *testing.T) {
	s, _ := newFavoriteService(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", "alien"); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if _, err := s.Add(ctx, "u1", "alien"); !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFavorites_RemoveMissingIsNoError(t *testing.T) {
	s, _ := newFavoriteService(t)
	if err := s.Remove(context.Background(), "u1", "never-added"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
}

func TestFavorites_Remove(t *testing.T) {
	s, repo := newFavoriteService(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", "alien"); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := s.Remove(ctx, "u1", "alien"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("favorite not removed")
	}
}

func TestFavorites_Validation(t *testing.T) {
	s, _ := newFavoriteService(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, "", "x"); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := s.Add(ctx, "u1", ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := s.Remove(ctx, "u1", ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := s.List(ctx, ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
