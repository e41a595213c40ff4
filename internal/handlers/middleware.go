package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"benchmate/internal/apperr"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth verifies the session cookie and injects the caller's user id
// into the request context.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value == "" {
			respondError(w, apperr.Unauthorized("Unauthorized - No token provided"))
			return
		}

		rawID, err := a.tokens.Verify(cookie.Value)
		if err != nil {
			respondError(w, apperr.Unauthorized("Invalid token"))
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			respondError(w, apperr.Unauthorized("Invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(userIDKey).(uuid.UUID)
	return id
}
