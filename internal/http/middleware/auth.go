package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

// Auth verifies bearer tokens and injects the authenticated user into the
// request context under domain.AuthUserKey.
type Auth struct {
	authService domain.AuthServiceInterface
	logger      logger.Logger
}

func NewAuth(authService domain.AuthServiceInterface, logger logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// RequireAuth wraps a handler so it only runs with a valid bearer token.
func (a *Auth) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeUnauthorized(w, "Invalid authorization header format")
			return
		}

		user, err := a.authService.VerifyToken(r.Context(), parts[1])
		if err != nil {
			writeUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), domain.AuthUserKey, user)
		ctx = context.WithValue(ctx, domain.UserIDKey, user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
