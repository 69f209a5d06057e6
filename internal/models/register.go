package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username, 3 to 50 characters
	// required: true
	// example: alice
	Username string `json:"username"`

	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email"`

	// Password, at least 8 characters and at most 72 bytes
	// required: true
	// example: password1
	Password string `json:"password"`
}
