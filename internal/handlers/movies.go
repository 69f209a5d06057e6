package handlers

//go:generate mockgen -source=movies.go -destination=mock_movies.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/models"
)

// MovieCreator defines the interface that the service must implement.
type MovieCreator interface {
	Create(ctx context.Context, ownerID uuid.UUID, req models.MovieRequest) (*models.MovieDB, error)
}

// MovieLister defines the interface that the service must implement.
type MovieLister interface {
	List(ctx context.Context, ownerID uuid.UUID) []models.MovieDB
}

// MovieGetter defines the interface that the service must implement.
type MovieGetter interface {
	Get(ctx context.Context, ownerID uuid.UUID, id string) (*models.MovieDB, error)
}

// MovieUpdater defines the interface that the service must implement.
type MovieUpdater interface {
	Update(ctx context.Context, ownerID uuid.UUID, id string, req models.MovieRequest) (*models.MovieDB, error)
}

// MovieDeleter defines the interface that the service must implement.
type MovieDeleter interface {
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
}

// WatchedToggler defines the interface that the service must implement.
type WatchedToggler interface {
	ToggleWatched(ctx context.Context, ownerID uuid.UUID, id string) (*models.MovieDB, error)
}

// NewCreateMovieHandler returns an HTTP handler that adds a movie to the caller's collection.
// @Summary Create movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body models.MovieRequest true "Movie"
// @Success 201 {object} models.MovieResponse "Created movie"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 422 {object} models.ErrorResponse "Validation failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /movies [post]
// @Security BearerAuth
func NewCreateMovieHandler(svc MovieCreator, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		var req models.MovieRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, detailInvalidBody)
			return
		}

		movie, err := svc.Create(r.Context(), user.UserID, req)
		if err != nil {
			writeServiceError(r.Context(), w, err, "")
			return
		}

		writeJSON(w, http.StatusCreated, movie.ToResponse())
	}
}

// NewListMoviesHandler returns an HTTP handler listing the caller's movies, newest first.
// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {array} models.MovieResponse "Movies"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Router /movies [get]
// @Security BearerAuth
func NewListMoviesHandler(svc MovieLister, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		movies := svc.List(r.Context(), user.UserID)

		resp := make([]models.MovieResponse, 0, len(movies))
		for i := range movies {
			resp = append(resp, movies[i].ToResponse())
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetMovieHandler returns an HTTP handler for a single movie of the caller.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.MovieResponse "Movie"
// @Failure 400 {object} models.ErrorResponse "Invalid movie ID format"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Router /movies/{id} [get]
// @Security BearerAuth
func NewGetMovieHandler(svc MovieGetter, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		id := chi.URLParam(r, "id")
		movie, err := svc.Get(r.Context(), user.UserID, id)
		if err != nil {
			writeServiceError(r.Context(), w, err, id)
			return
		}

		writeJSON(w, http.StatusOK, movie.ToResponse())
	}
}

// NewUpdateMovieHandler returns an HTTP handler replacing a movie of the caller.
// An omitted watched flag is stored as false.
// @Summary Update movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body models.MovieRequest true "Movie"
// @Success 200 {object} models.MovieResponse "Updated movie"
// @Failure 400 {object} models.ErrorResponse "Invalid request body or movie ID"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Failure 422 {object} models.ErrorResponse "Validation failed"
// @Router /movies/{id} [put]
// @Security BearerAuth
func NewUpdateMovieHandler(svc MovieUpdater, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		var req models.MovieRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, detailInvalidBody)
			return
		}

		id := chi.URLParam(r, "id")
		movie, err := svc.Update(r.Context(), user.UserID, id, req)
		if err != nil {
			writeServiceError(r.Context(), w, err, id)
			return
		}

		writeJSON(w, http.StatusOK, movie.ToResponse())
	}
}

// NewDeleteMovieHandler returns an HTTP handler removing a movie of the caller.
// @Summary Delete movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.MessageResponse "Deleted"
// @Failure 400 {object} models.ErrorResponse "Invalid movie ID format"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Router /movies/{id} [delete]
// @Security BearerAuth
func NewDeleteMovieHandler(svc MovieDeleter, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		id := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), user.UserID, id); err != nil {
			writeServiceError(r.Context(), w, err, id)
			return
		}

		writeJSON(w, http.StatusOK, models.MessageResponse{
			Message: fmt.Sprintf("Movie with ID %s deleted successfully", id),
		})
	}
}

// NewToggleWatchedHandler returns an HTTP handler flipping the watched flag of a movie of the caller.
// @Summary Toggle watched
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.ToggleWatchedResponse "New watched status"
// @Failure 400 {object} models.ErrorResponse "Invalid movie ID format"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Router /movies/{id}/toggle-watched [put]
// @Security BearerAuth
func NewToggleWatchedHandler(svc WatchedToggler, userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		id := chi.URLParam(r, "id")
		movie, err := svc.ToggleWatched(r.Context(), user.UserID, id)
		if err != nil {
			writeServiceError(r.Context(), w, err, id)
			return
		}

		writeJSON(w, http.StatusOK, models.ToggleWatchedResponse{
			Message: fmt.Sprintf("Movie with ID %s watched status toggled to %t", id, movie.Watched),
			Watched: movie.Watched,
		})
	}
}
