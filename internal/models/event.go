package models

// Event operations published to Kafka.
const (
	OperationUserRegistered      = "user.registered"
	OperationMovieCreated        = "movie.created"
	OperationMovieUpdated        = "movie.updated"
	OperationMovieDeleted        = "movie.deleted"
	OperationMovieWatchedToggled = "movie.watched_toggled"
)

// Event describes a state change made on behalf of a user.
type Event struct {
	EventID    string `json:"event_id"`    // EventID is a unique identifier for the event.
	Timestamp  int64  `json:"timestamp"`   // Timestamp is the Unix time (seconds) of the change.
	UserID     string `json:"user_id"`     // UserID is the user who made the change.
	Operation  string `json:"operation"`   // Operation is one of the Operation* constants.
	ResourceID string `json:"resource_id"` // ResourceID is the affected user or movie ID.
}
