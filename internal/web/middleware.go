package web

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// requireUser resolves the Bearer token to its owning user and stores
// it in the request context. Unknown or missing tokens get 401.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, found, err := s.userRepo.LookupByToken(r.Context(), token)
		if err != nil {
			log.Printf("token lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to authenticate")
			return
		}
		if !found {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// currentUser returns the authenticated user set by requireUser.
func currentUser(r *http.Request) domain.User {
	user, _ := r.Context().Value(userKey).(domain.User)
	return user
}
