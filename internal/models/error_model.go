package models

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
