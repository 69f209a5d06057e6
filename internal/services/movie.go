package services

//go:generate mockgen -source=movie.go -destination=mock_movie.go -package=services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/sbilibin2017/filmtrack/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	minReleaseYear = 1800
	maxReleaseYear = 9999
)

// MovieReader defines owner-scoped movie lookups.
type MovieReader interface {
	ListByOwner(ctx context.Context, userID string) ([]models.MovieDB, error)
	GetByIDAndOwner(ctx context.Context, id, userID string) (*models.MovieDB, error)
}

// MovieWriter defines owner-scoped movie mutations.
type MovieWriter interface {
	Insert(ctx context.Context, movie *models.MovieDB) (*models.MovieDB, error)
	ReplaceByIDAndOwner(ctx context.Context, id, userID string, movie *models.MovieDB) (*models.MovieDB, error)
	SetWatched(ctx context.Context, id, userID string, watched bool, updatedAt time.Time) (*models.MovieDB, error)
	DeleteByIDAndOwner(ctx context.Context, id, userID string) (bool, error)
}

// MovieService manages movies on behalf of their owner.
// A movie that exists but belongs to another user is reported exactly like a missing one.
type MovieService struct {
	reader      MovieReader
	writer      MovieWriter
	kafkaWriter KafkaWriter
}

// NewMovieService creates a new MovieService. kafkaWriter may be nil.
func NewMovieService(reader MovieReader, writer MovieWriter, kafkaWriter KafkaWriter) *MovieService {
	return &MovieService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create validates req and stores a new movie owned by ownerID.
func (s *MovieService) Create(ctx context.Context, ownerID uuid.UUID, req models.MovieRequest) (*models.MovieDB, error) {
	log := logger.FromContext(ctx)

	req, err := normalizeMovie(req)
	if err != nil {
		return nil, err
	}

	ts := now()
	movie, err := s.writer.Insert(ctx, &models.MovieDB{
		UserID:      ownerID.String(),
		Title:       req.Title,
		Director:    req.Director,
		ReleaseYear: req.ReleaseYear,
		Watched:     req.Watched,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	if err != nil {
		log.Errorw("failed to create movie", "user_id", ownerID, "err", err)
		return nil, err
	}

	publishEvent(ctx, s.kafkaWriter, newEvent(ownerID.String(), models.OperationMovieCreated, movie.ID.Hex()))

	return movie, nil
}

// List returns the owner's movies, newest first. Store failures yield an empty list.
func (s *MovieService) List(ctx context.Context, ownerID uuid.UUID) []models.MovieDB {
	movies, err := s.reader.ListByOwner(ctx, ownerID.String())
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list movies", "user_id", ownerID, "err", err)
		return []models.MovieDB{}
	}
	if movies == nil {
		return []models.MovieDB{}
	}
	return movies
}

// Get returns one of the owner's movies.
func (s *MovieService) Get(ctx context.Context, ownerID uuid.UUID, id string) (*models.MovieDB, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, ErrInvalidMovieID
	}

	movie, err := s.reader.GetByIDAndOwner(ctx, id, ownerID.String())
	if err := notFoundOr(ctx, "get", id, movie == nil, err); err != nil {
		return nil, err
	}
	return movie, nil
}

// Update replaces the title, director, release year and watched flag of one of the owner's movies.
func (s *MovieService) Update(ctx context.Context, ownerID uuid.UUID, id string, req models.MovieRequest) (*models.MovieDB, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, ErrInvalidMovieID
	}

	req, err := normalizeMovie(req)
	if err != nil {
		return nil, err
	}

	movie, err := s.writer.ReplaceByIDAndOwner(ctx, id, ownerID.String(), &models.MovieDB{
		Title:       req.Title,
		Director:    req.Director,
		ReleaseYear: req.ReleaseYear,
		Watched:     req.Watched,
		UpdatedAt:   now(),
	})
	if err := notFoundOr(ctx, "update", id, movie == nil, err); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.kafkaWriter, newEvent(ownerID.String(), models.OperationMovieUpdated, id))

	return movie, nil
}

// Delete removes one of the owner's movies.
func (s *MovieService) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	if !primitive.IsValidObjectID(id) {
		return ErrInvalidMovieID
	}

	deleted, err := s.writer.DeleteByIDAndOwner(ctx, id, ownerID.String())
	if err := notFoundOr(ctx, "delete", id, !deleted, err); err != nil {
		return err
	}

	publishEvent(ctx, s.kafkaWriter, newEvent(ownerID.String(), models.OperationMovieDeleted, id))

	return nil
}

// ToggleWatched flips the watched flag of one of the owner's movies and returns the result.
// It reads then writes, so two concurrent toggles may collapse into one.
func (s *MovieService) ToggleWatched(ctx context.Context, ownerID uuid.UUID, id string) (*models.MovieDB, error) {
	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	movie, err := s.writer.SetWatched(ctx, id, ownerID.String(), !current.Watched, now())
	if err := notFoundOr(ctx, "toggle watched", id, movie == nil, err); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.kafkaWriter, newEvent(ownerID.String(), models.OperationMovieWatchedToggled, id))

	return movie, nil
}

// notFoundOr maps store results to service errors.
func notFoundOr(ctx context.Context, op, id string, missing bool, err error) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return ErrInvalidMovieID
	case err != nil:
		logger.FromContext(ctx).Errorw("failed to "+op+" movie", "movie_id", id, "err", err)
		return err
	case missing:
		return ErrMovieNotFound
	}
	return nil
}

func normalizeMovie(req models.MovieRequest) (models.MovieRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Director = strings.TrimSpace(req.Director)

	errs := fieldErrors{}
	if req.Title == "" {
		errs.add("title", "must not be empty")
	}
	if req.Director == "" {
		errs.add("director", "must not be empty")
	}
	if req.ReleaseYear < minReleaseYear || req.ReleaseYear > maxReleaseYear {
		errs.add("release_year", "must be between 1800 and 9999")
	}

	return req, errs.err()
}
