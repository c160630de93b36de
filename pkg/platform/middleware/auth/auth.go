// Package auth holds the bearer-token middleware guarding the profile and
// social endpoints.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "cabinet/pkg/domain-errors"
	"cabinet/pkg/platform/httputil"
	"cabinet/pkg/requestcontext"
)

// TokenValidator validates an access token and reports its claims.
type TokenValidator interface {
	Validate(tokenString string) (*Claims, error)
}

// Claims are the token claims the middleware cares about.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

type contextKeyUserID struct{}
type contextKeyRole struct{}

// GetUserID retrieves the authenticated user ID from the context.
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID{}).(string); ok {
		return userID
	}
	return ""
}

// GetRole retrieves the authenticated role from the context.
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(contextKeyRole{}).(string); ok {
		return role
	}
	return ""
}

// WithClaims injects claims into a context. Useful for handler tests that
// don't run the middleware chain.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID{}, claims.UserID)
	return context.WithValue(ctx, contextKeyRole{}, claims.Role)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := validator.Validate(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				logger.WarnContext(r.Context(), "token validation failed",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			ctx := WithClaims(r.Context(), *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
