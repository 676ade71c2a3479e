package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopfront/account-service/pkg/utils"
)

// TokenValidator resolves a bearer token to an opaque user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type userIDKey struct{}

// GetUserID returns the authenticated user id, or "" when the request
// did not pass RequireAuth.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}
	return userID
}

// RequireAuth rejects requests without a valid bearer token before any
// handler or store access runs.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("rejected token",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
