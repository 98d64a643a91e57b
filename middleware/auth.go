package middleware

import (
	"context"
	"net/http"
	"strings"

	"pool-engine-go/interfaces"
	"pool-engine-go/models"
)

// UserContextKey is the key used to store the operator in request context
type UserContextKey string

const UserKey UserContextKey = "user"

// AuthMiddleware handles JWT bearer authentication for the API
type AuthMiddleware struct {
	authService interfaces.AuthServiceInterface
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService interfaces.AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserFromRequest extracts and validates the operator from the request
func (m *AuthMiddleware) getUserFromRequest(r *http.Request) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return m.authService.GetUserFromToken(parts[1])
		}
	}
	return nil, http.ErrNoCookie
}

// GetUserFromContext retrieves the authenticated operator from request context
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}
