package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user row in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key, generated by the store
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt digest, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

// UserResponse is the public view of a user
// swagger:model UserResponse
type UserResponse struct {
	// User ID
	// example: 3f0e7c1a-8a53-4f55-a0d4-2d3f0b8f9c11
	ID string `json:"id"`

	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: alice@example.com
	Email string `json:"email"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a stored user into its public view.
func (u *UserDB) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.UserID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
