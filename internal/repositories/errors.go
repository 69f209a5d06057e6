package repositories

import "errors"

var (
	// ErrDuplicateUser is returned when an insert violates the username or email unique constraint.
	ErrDuplicateUser = errors.New("duplicate user")
	// ErrInvalidID is returned when a movie ID is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid id")
)
