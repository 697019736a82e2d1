package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskin/taskin-api/internal/api/shared"
	"github.com/taskin/taskin-api/internal/idcodec"
	"github.com/taskin/taskin-api/internal/service"
	"github.com/taskin/taskin-api/internal/store"
)

// UserIDHeader is the header carrying the caller's opaque user identifier.
// The value is the encoded form produced at login; it is never a raw ID.
const UserIDHeader = "X-User-ID"

// AuthMiddleware authenticates requests by resolving the opaque user
// identifier header through the user service.
type AuthMiddleware struct {
	users *service.UserService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(users *service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
	}
}

// Authenticate validates the opaque identifier from the user-ID header and
// adds the resolved raw user ID to the request context. A missing header, an
// undecodable token, and a token for a nonexistent user all yield 401; the
// three cases are indistinguishable to the client.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(UserIDHeader)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User identifier required")
			return
		}

		user, err := m.users.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, idcodec.ErrInvalidToken) || store.IsNotFoundError(err) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user identifier")
				return
			}
			slog.Error("failed to resolve user identifier", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user's raw ID from the request
// context. Returns the ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	return userID, ok
}
