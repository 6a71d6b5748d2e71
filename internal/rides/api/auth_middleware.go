package api

import (
	"context"
	"net/http"
	"strings"

	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/jwt"
	"ride-tracker/internal/shared/util"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)

// AdminAuthMiddleware rejects unauthenticated callers with 401 before any
// query logic runs, and authenticated non-admins with 403. Claims of
// accepted callers are placed on the request context.
func AdminAuthMiddleware(tokens *jwt.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				util.WriteJSONError(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				util.WriteJSONError(w, "invalid Authorization format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ParseToken(parts[1])
			if err != nil {
				util.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			if claims.Role != "admin" {
				util.WriteJSONError(w, apperrors.ErrForbidden.Error(), http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerID extracts the authenticated user's id from the context.
func CallerID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}
