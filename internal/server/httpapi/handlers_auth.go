package httpapi

import (
	"net/http"

	"github.com/mkalvans/cinetrack/internal/server/services"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refreshToken"`
	DisplayName  string  `json:"displayName"`
	AvatarUrl    *string `json:"avatarUrl"`
	Email        string  `json:"email"`
}

func toAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		DisplayName:  res.DisplayName,
		AvatarUrl:    res.AvatarUrl,
		Email:        res.Email,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.users.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.users.Refresh(r.Context(), req.Token, req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}
