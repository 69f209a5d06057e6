package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovieDB is a movie document stored in MongoDB.
type MovieDB struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"` // owner, immutable
	Title       string             `json:"title" bson:"title"`
	Director    string             `json:"director" bson:"director"`
	ReleaseYear int                `json:"release_year" bson:"release_year"`
	Watched     bool               `json:"watched" bson:"watched"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// MovieRequest is the JSON body for creating or replacing a movie
// swagger:model MovieRequest
type MovieRequest struct {
	// Title
	// required: true
	// example: Dune
	Title string `json:"title"`

	// Director
	// required: true
	// example: Villeneuve
	Director string `json:"director"`

	// Release year
	// required: true
	// example: 2021
	ReleaseYear int `json:"release_year"`

	// Watched flag, false when omitted
	// example: false
	Watched bool `json:"watched"`
}

// MovieResponse is the public view of a movie
// swagger:model MovieResponse
type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	ReleaseYear int       `json:"release_year"`
	Watched     bool      `json:"watched"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToggleWatchedResponse is returned after flipping the watched flag
// swagger:model ToggleWatchedResponse
type ToggleWatchedResponse struct {
	// example: Movie with ID 65f1c0ffee0000000000beef watched status toggled to true
	Message string `json:"message"`
	Watched bool   `json:"watched"`
}

// ToResponse converts a stored movie into its public view.
func (m *MovieDB) ToResponse() MovieResponse {
	return MovieResponse{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear,
		Watched:     m.Watched,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
