package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkalvans/cinetrack/internal/server/models"
	"github.com/mkalvans/cinetrack/internal/server/services"
)

type watchHistoryRequest struct {
	MovieSlug            string `json:"movieSlug"`
	MovieName            string `json:"movieName"`
	MovieThumbUrl        string `json:"movieThumbUrl"`
	Episode              string `json:"episode"`
	WatchedTimeInSeconds int    `json:"watchedTimeInSeconds"`
	IsCompleted          bool   `json:"isCompleted"`
}

type watchHistoryResponse struct {
	MovieSlug            string    `json:"movieSlug"`
	MovieName            string    `json:"movieName"`
	MovieThumbUrl        string    `json:"movieThumbUrl"`
	Episode              *string   `json:"episode"`
	WatchedTimeInSeconds int       `json:"watchedTimeInSeconds"`
	IsCompleted          bool      `json:"isCompleted"`
	LastWatchedAt        time.Time `json:"lastWatchedAt"`
}

type resumeRequest struct {
	Episodes []string `json:"episodes"`
}

type resumeResponse struct {
	Episode              *string `json:"episode"`
	WatchedTimeInSeconds int     `json:"watchedTimeInSeconds"`
}

func toHistoryResponse(records []*models.ProgressRecord) []watchHistoryResponse {
	out := make([]watchHistoryResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, watchHistoryResponse{
			MovieSlug:            rec.MovieSlug,
			MovieName:            rec.MovieName,
			MovieThumbUrl:        rec.MovieThumbUrl,
			Episode:              rec.Episode,
			WatchedTimeInSeconds: rec.WatchedSeconds,
			IsCompleted:          rec.IsCompleted,
			LastWatchedAt:        rec.LastWatchedAt,
		})
	}
	return out
}

func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	var req watchHistoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := s.progress.Report(r.Context(), userIDFromCtx(r.Context()), &services.ProgressReport{
		MovieSlug:      req.MovieSlug,
		MovieName:      req.MovieName,
		MovieThumbUrl:  req.MovieThumbUrl,
		Episode:        req.Episode,
		WatchedSeconds: req.WatchedTimeInSeconds,
		IsCompleted:    req.IsCompleted,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Progress saved"})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.progress.History(r.Context(), userIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(records))
}

func (s *Server) handleGetHistoryForContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	records, err := s.progress.HistoryForContent(r.Context(), userIDFromCtx(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(records))
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var req resumeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	slug := chi.URLParam(r, "slug")
	target, err := s.progress.ResumeTarget(r.Context(), userIDFromCtx(r.Context()), slug, req.Episodes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resumeResponse{
		Episode:              target.Episode,
		WatchedTimeInSeconds: target.WatchedSeconds,
	})
}
