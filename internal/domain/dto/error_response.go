package dto

import "time"

// ErrorResponse is the standardized JSON error envelope returned by all
// API endpoints.
//
// It also implements the error interface so middleware can pass it
// around as a regular error value.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"date_from is required"`
	Timestamp    time.Time `json:"timestamp" example:"2025-09-04T12:00:00Z"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse with the current timestamp.
// err may be nil when there is no underlying cause to expose.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
