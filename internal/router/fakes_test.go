package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"github.com/sbilibin2017/filmtrack/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUsers is an in-memory user store enforcing unique usernames and emails.
type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.UserDB
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]models.UserDB{}}
}

func (s *memUsers) find(match func(models.UserDB) bool) *models.UserDB {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			u := u
			return &u
		}
	}
	return nil
}

func (s *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.UserDB, error) {
	return s.find(func(u models.UserDB) bool { return u.UserID == id }), nil
}

func (s *memUsers) GetByUsername(_ context.Context, username string) (*models.UserDB, error) {
	return s.find(func(u models.UserDB) bool { return u.Username == username }), nil
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (*models.UserDB, error) {
	return s.find(func(u models.UserDB) bool { return u.Email == email }), nil
}

func (s *memUsers) Save(_ context.Context, username, email, hash string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, repositories.ErrDuplicateUser
		}
	}
	u := models.UserDB{UserID: uuid.New(), Username: username, Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()}
	s.users[u.UserID] = u
	return &u, nil
}

// memMovies is an in-memory movie store with owner-scoped access.
type memMovies struct {
	mu     sync.Mutex
	movies map[primitive.ObjectID]models.MovieDB
}

func newMemMovies() *memMovies {
	return &memMovies{movies: map[primitive.ObjectID]models.MovieDB{}}
}

func (s *memMovies) lookup(id, userID string) (primitive.ObjectID, *models.MovieDB, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, nil, repositories.ErrInvalidID
	}
	m, ok := s.movies[oid]
	if !ok || m.UserID != userID {
		return oid, nil, nil
	}
	return oid, &m, nil
}

func (s *memMovies) Insert(_ context.Context, movie *models.MovieDB) (*models.MovieDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	movie.ID = primitive.NewObjectID()
	s.movies[movie.ID] = *movie
	return movie, nil
}

func (s *memMovies) ListByOwner(_ context.Context, userID string) ([]models.MovieDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.MovieDB{}
	for _, m := range s.movies {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memMovies) GetByIDAndOwner(_ context.Context, id, userID string) (*models.MovieDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, m, err := s.lookup(id, userID)
	return m, err
}

func (s *memMovies) ReplaceByIDAndOwner(_ context.Context, id, userID string, movie *models.MovieDB) (*models.MovieDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, m, err := s.lookup(id, userID)
	if m == nil || err != nil {
		return nil, err
	}
	m.Title, m.Director, m.ReleaseYear, m.Watched, m.UpdatedAt = movie.Title, movie.Director, movie.ReleaseYear, movie.Watched, movie.UpdatedAt
	s.movies[oid] = *m
	return m, nil
}

func (s *memMovies) SetWatched(_ context.Context, id, userID string, watched bool, updatedAt time.Time) (*models.MovieDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, m, err := s.lookup(id, userID)
	if m == nil || err != nil {
		return nil, err
	}
	m.Watched, m.UpdatedAt = watched, updatedAt
	s.movies[oid] = *m
	return m, nil
}

func (s *memMovies) DeleteByIDAndOwner(_ context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, m, err := s.lookup(id, userID)
	if m == nil || err != nil {
		return false, err
	}
	delete(s.movies, oid)
	return true, nil
}
