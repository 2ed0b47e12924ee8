package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkalvans/cinetrack/internal/server/auth"
)

// contextKey is a typed key for request context values.
type contextKey string

const contextKeyUserID contextKey = "user_id"

// extractBearerToken returns the token from "Authorization: Bearer {token}".
// Returns empty string if the header is missing or malformed.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// requireAuth validates the access token and injects the account id into
// the request context. Expired tokens are rejected here; callers holding a
// refresh secret use the refresh endpoint instead.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token",
				"Authorization: Bearer {token} header is required")
			return
		}
		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "access token is invalid or expired")
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromCtx extracts the authenticated account id from the request context.
func userIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyUserID).(string)
	return id
}
