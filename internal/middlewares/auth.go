package middlewares

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// Tokener extracts the bearer token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Resolver maps a token to the user it was issued for.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.UserDB, error)
}

// AuthMiddleware returns a middleware that admits only requests carrying a token
// that resolves to an existing user. The user and the raw token are stored in the request context.
func AuthMiddleware(tokener Tokener, resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			user, err := resolver.Resolve(ctx, tokenString)
			if err != nil {
				log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			ctx = context.WithValue(ctx, userContextKey, user)
			ctx = context.WithValue(ctx, tokenContextKey, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "Authentication required"})
}

// GetUserFromContext returns the authenticated user stored by AuthMiddleware.
func GetUserFromContext(ctx context.Context) (*models.UserDB, bool) {
	user, ok := ctx.Value(userContextKey).(*models.UserDB)
	return user, ok && user != nil
}

// GetTokenFromContext returns the bearer token accepted by AuthMiddleware.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}
