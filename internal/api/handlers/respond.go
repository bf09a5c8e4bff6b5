package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/services"
)

// respondJSON writes payload as a JSON response body.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service-level sentinels to their status code and
// delegates the rest to the apierror boundary.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierror.Write(w, apierror.NotFound("User not found"))
	case errors.Is(err, services.ErrTweetNotFound):
		apierror.Write(w, apierror.NotFound("Tweet not found"))
	default:
		apierror.Write(w, err)
	}
}
