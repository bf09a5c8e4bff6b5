package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/services"
)

const likePageSize = 50

// LikeHandler handles HTTP requests for tweet likes.
type LikeHandler struct {
	service services.LikeServiceProvider
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(service services.LikeServiceProvider) *LikeHandler {
	return &LikeHandler{service: service}
}

// GetForTweet handles listing the likes of a tweet.
func (h *LikeHandler) GetForTweet(w http.ResponseWriter, r *http.Request) {
	likes, err := h.service.GetForTweet(chi.URLParam(r, "id"), likePageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

// Create handles liking a tweet as the authenticated user.
func (h *LikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	like, err := h.service.Create(chi.URLParam(r, "id"), identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, like)
}

// Delete handles removing the authenticated user's like of a tweet.
func (h *LikeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	if err := h.service.Delete(chi.URLParam(r, "id"), identity.ID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
