// Package apierror defines the error taxonomy exchanged between the
// service layer and the HTTP boundary. Domain errors carry their own
// status code; anything else is rendered as an opaque 500.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// APIError is a client-visible failure with an HTTP status code.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with an arbitrary status code.
func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// Validation signals malformed input the client must resubmit.
func Validation(message string) *APIError {
	return New(http.StatusUnprocessableEntity, message)
}

// Conflict signals a duplicate unique field.
func Conflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

// Unauthorized signals missing or bad credentials. The message must
// stay generic so failure paths are indistinguishable to the caller.
func Unauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

// Forbidden signals an authenticated identity acting on a resource it
// does not own.
func Forbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

// NotFound signals an absent resource.
func NotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

// Write renders err as a JSON {message} body. Non-APIError values are
// logged server-side and collapsed to a generic 500 so internal detail
// never reaches the client.
func Write(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		log.Error().Err(err).Msg("Unexpected internal error")
		apiErr = New(http.StatusInternalServerError, "Internal server error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
