package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/server/episode"
	"github.com/mkalvans/cinetrack/internal/server/models"
	"github.com/mkalvans/cinetrack/internal/server/repositories/repomanager"
)

// ProgressReport is one playback-position report from a client.
type ProgressReport struct {
	MovieSlug      string
	MovieName      string
	MovieThumbUrl  string
	Episode        string // raw episode label; empty for standalone movies
	WatchedSeconds int
	IsCompleted    bool
}

// ResumeTarget names the episode a resuming client should start from and
// the position within it. Episode is nil for standalone movies.
type ResumeTarget struct {
	Episode        *string
	WatchedSeconds int
}

// ProgressService owns the watch-history record lifecycle. Reports are
// merged deterministically so that repeated or out-of-order reports never
// corrupt state: the numeric position is last-write-wins (a lower value is
// a legitimate rewind), the completion flag is sticky, and a zero-second
// report never promotes a stale record to most-recently-watched.
type ProgressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProgressService constructs a ProgressService.
func NewProgressService(db *sql.DB, m repomanager.RepositoryManager) *ProgressService {
	return &ProgressService{db: db, repomanager: m}
}

// Report records a playback-progress report for the account, creating or
// merging the record keyed by (account, movie slug, normalized episode).
// Retrying an identical report is safe by construction.
func (s *ProgressService) Report(ctx context.Context, userID string, rep *ProgressReport) error {
	if userID == "" {
		return common.ErrValidation
	}
	if rep == nil || rep.MovieSlug == "" || rep.WatchedSeconds < 0 {
		return common.ErrValidation
	}

	ep := episode.Normalize(rep.Episode)
	repo := s.repomanager.Progress(s.db)

	existing, err := repo.Find(ctx, userID, rep.MovieSlug, ep)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("error searching progress record: %w", err)
		}
		rec := &models.ProgressRecord{
			UserID:         userID,
			MovieSlug:      rep.MovieSlug,
			MovieName:      rep.MovieName,
			MovieThumbUrl:  rep.MovieThumbUrl,
			Episode:        ep,
			WatchedSeconds: rep.WatchedSeconds,
			IsCompleted:    rep.IsCompleted,
			LastWatchedAt:  time.Now(),
		}
		if _, err := repo.Create(ctx, rec); err != nil {
			return fmt.Errorf("error creating progress record: %w", err)
		}
		return nil
	}

	// The catalog's display metadata may evolve; trust the latest report.
	existing.MovieName = rep.MovieName
	existing.MovieThumbUrl = rep.MovieThumbUrl
	existing.Episode = ep
	existing.WatchedSeconds = rep.WatchedSeconds
	existing.IsCompleted = existing.IsCompleted || rep.IsCompleted
	if rep.WatchedSeconds > 0 {
		existing.LastWatchedAt = time.Now()
	}

	if err := repo.Update(ctx, existing); err != nil {
		return fmt.Errorf("error updating progress record: %w", err)
	}
	return nil
}

// History returns all of the account's progress records, most recently
// watched first.
func (s *ProgressService) History(ctx context.Context, userID string) ([]*models.ProgressRecord, error) {
	if userID == "" {
		return nil, common.ErrValidation
	}
	records, err := s.repomanager.Progress(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	return records, nil
}

// HistoryForContent returns the account's records for one title, most
// recently watched first; a resuming client takes the first element.
func (s *ProgressService) HistoryForContent(ctx context.Context, userID, movieSlug string) ([]*models.ProgressRecord, error) {
	if userID == "" || movieSlug == "" {
		return nil, common.ErrValidation
	}
	records, err := s.repomanager.Progress(s.db).ListByUserAndSlug(ctx, userID, movieSlug)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	return records, nil
}

// ResumeTarget picks where a returning viewer should continue: the record
// with the latest lastWatchedAt wins regardless of episode ordinal, and its
// label is matched against the offered episode names first by normalized
// equality, then by numeric core, so that "12" resumes "Episode 12.".
// It returns common.ErrNotFound when there is no history or no offered name
// matches.
func (s *ProgressService) ResumeTarget(ctx context.Context, userID, movieSlug string, episodeNames []string) (*ResumeTarget, error) {
	records, err := s.HistoryForContent(ctx, userID, movieSlug)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, common.ErrNotFound
	}

	latest := records[0]
	if latest.Episode == nil {
		return &ResumeTarget{WatchedSeconds: latest.WatchedSeconds}, nil
	}

	for _, name := range episodeNames {
		if norm := episode.Normalize(name); norm != nil && *norm == *latest.Episode {
			return &ResumeTarget{Episode: &name, WatchedSeconds: latest.WatchedSeconds}, nil
		}
	}
	for _, name := range episodeNames {
		if episode.Match(name, *latest.Episode) {
			return &ResumeTarget{Episode: &name, WatchedSeconds: latest.WatchedSeconds}, nil
		}
	}
	return nil, common.ErrNotFound
}
