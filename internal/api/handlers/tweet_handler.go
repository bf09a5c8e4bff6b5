package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/juliencrn/twitter-clone/internal/validate"
	"github.com/rs/zerolog/log"
)

const tweetPageSize = 50

// TweetHandler handles HTTP requests for tweets.
type TweetHandler struct {
	service services.TweetServiceProvider
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(service services.TweetServiceProvider) *TweetHandler {
	return &TweetHandler{service: service}
}

// TweetPayload defines the structure for tweet create/update requests.
type TweetPayload struct {
	Message string `json:"message" validate:"required,max=280"`
	Asset   string `json:"asset"`
}

// GetAll handles listing the latest tweets.
func (h *TweetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.service.GetAll(tweetPageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tweets)
}

// Get handles retrieving a single tweet.
func (h *TweetHandler) Get(w http.ResponseWriter, r *http.Request) {
	tweet, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tweet)
}

// Create handles publishing a new tweet by the authenticated user.
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	var payload TweetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierror.Write(w, apierror.Validation("Invalid request body"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		apierror.Write(w, err)
		return
	}

	tweet, err := h.service.Create(identity.ID, payload.Message, payload.Asset)
	if err != nil {
		log.Error().Err(err).Str("author_id", identity.ID).Msg("Failed to create tweet")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tweet)
}

// Update handles editing a tweet. The tweet is loaded before the
// ownership check so a missing tweet reads as 404, not 403.
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	tweet, err := h.service.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := auth.RequireOwner(tweet.AuthorID, identity); err != nil {
		apierror.Write(w, err)
		return
	}

	var payload TweetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierror.Write(w, apierror.Validation("Invalid request body"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		apierror.Write(w, err)
		return
	}

	updated, err := h.service.Update(id, payload.Message, payload.Asset)
	if err != nil {
		log.Error().Err(err).Str("tweet_id", id).Msg("Failed to update tweet")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles removing a tweet, owner only.
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	tweet, err := h.service.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := auth.RequireOwner(tweet.AuthorID, identity); err != nil {
		apierror.Write(w, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("tweet_id", id).Msg("Failed to delete tweet")
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
