package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/sbilibin2017/filmtrack/internal/services"
)

const (
	detailInternal           = "Internal server error"
	detailAuthRequired       = "Authentication required"
	detailInvalidBody        = "Invalid request body"
	detailValidation         = "Validation failed"
	detailInvalidCredentials = "Incorrect username or password"
	detailInvalidMovieID     = "Invalid movie ID format"
)

// UserGetter returns the authenticated user placed in the context by the auth middleware.
type UserGetter func(ctx context.Context) (*models.UserDB, bool)

// TokenGetter returns the bearer token placed in the context by the auth middleware.
type TokenGetter func(ctx context.Context) (string, bool)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}

func movieNotFound(id string) string {
	return fmt.Sprintf("Movie with ID %s not found", id)
}

// writeServiceError maps service errors to HTTP responses. movieID is used for 404 messages.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, movieID string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail: detailValidation,
			Fields: verr.Fields,
		})
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "Username or email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeUnauthorized(w, detailInvalidCredentials)
	case errors.Is(err, services.ErrUnauthenticated):
		writeUnauthorized(w, detailAuthRequired)
	case errors.Is(err, services.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, movieNotFound(movieID))
	case errors.Is(err, services.ErrInvalidMovieID):
		writeError(w, http.StatusBadRequest, detailInvalidMovieID)
	default:
		logger.FromContext(ctx).Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, detailInternal)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
