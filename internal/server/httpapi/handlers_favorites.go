package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type addFavoriteRequest struct {
	MovieSlug string `json:"movieSlug"`
}

type favoriteResponse struct {
	MovieSlug string    `json:"movieSlug"`
	AddedAt   time.Time `json:"addedAt"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.favorites.List(r.Context(), userIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]favoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, favoriteResponse{MovieSlug: f.MovieSlug, AddedAt: f.AddedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fav, err := s.favorites.Add(r.Context(), userIDFromCtx(r.Context()), req.MovieSlug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{MovieSlug: fav.MovieSlug, AddedAt: fav.AddedAt})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := s.favorites.Remove(r.Context(), userIDFromCtx(r.Context()), slug); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
