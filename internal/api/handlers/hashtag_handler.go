package handlers

import (
	"net/http"

	"github.com/juliencrn/twitter-clone/internal/services"
)

const (
	hashtagPageSize  = 50
	trendingPageSize = 20
)

// HashtagHandler handles HTTP requests for hashtags.
type HashtagHandler struct {
	service services.HashtagServiceProvider
}

// NewHashtagHandler creates a new HashtagHandler.
func NewHashtagHandler(service services.HashtagServiceProvider) *HashtagHandler {
	return &HashtagHandler{service: service}
}

// GetRecent handles listing recently created hashtags.
func (h *HashtagHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	hashtags, err := h.service.GetRecent(hashtagPageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hashtags)
}

// GetTrending handles listing the precomputed trending hashtags.
func (h *HashtagHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := h.service.GetTrending(trendingPageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trending)
}
