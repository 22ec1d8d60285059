package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forma/server/internal/auth"
	"github.com/forma/server/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// Authenticate validates the bearer token, resolves its subject to a user,
// and attaches the user to the request context. Missing, malformed,
// expired, or orphaned tokens are rejected with 401.
func Authenticate(tokens *auth.TokenService, authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization header format")
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "missing token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			user, err := authService.ValidateUser(r.Context(), claims.UserID)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSelf rejects requests whose {id} path parameter is not the
// authenticated user's id. Cross-user access is a 403, distinct from the
// 401 an invalid token gets.
func RequireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		pathID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil || pathID != user.ID {
			respondWithError(w, http.StatusForbidden, "forbidden", "cannot access another user's data")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the user attached to the request context by Authenticate.
func GetUser(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}

// respondWithError sends a JSON error response with a stable code.
func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]string{"error": message, "code": code}
	_ = json.NewEncoder(w).Encode(response)
}
