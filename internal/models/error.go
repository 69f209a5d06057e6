package models

// ErrorResponse is the body of every non-2xx response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Authentication required
	Detail string `json:"detail"`

	// Per-field validation messages, present on 422 only
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is a plain acknowledgement
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// example: Logged out successfully
	Message string `json:"message"`
}
