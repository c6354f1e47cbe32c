package dto

// ErrorResponse is the body of every error reply that has one.
type ErrorResponse struct {
	Error string `json:"error"`
}
