package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/models"
	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/juliencrn/twitter-clone/internal/validate"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateUserPayload defines the structure for profile updates.
type UpdateUserPayload struct {
	Name   string `json:"name" validate:"required,max=50"`
	Handle string `json:"handle" validate:"required,max=30"`
}

// GetAll handles listing every user's public profile.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAll()
	if err != nil {
		respondError(w, err)
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		public = append(public, user.Public())
	}
	respondJSON(w, http.StatusOK, public)
}

// Get handles retrieving a user's public profile by ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Public())
}

// GetMe retrieves the profile of the authenticated user. A valid token
// whose account has since been deleted yields a 404; the token itself
// stays accepted until it expires.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.service.FindByID(identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Public())
}

// Update handles profile updates. Only the owner may update a profile.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	target, err := h.service.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := auth.RequireOwner(target.ID, identity); err != nil {
		apierror.Write(w, err)
		return
	}

	var payload UpdateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierror.Write(w, apierror.Validation("Invalid request body"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		apierror.Write(w, err)
		return
	}

	user, err := h.service.Update(id, payload.Name, payload.Handle)
	if err != nil {
		var dup *services.ErrDuplicateUser
		if errors.As(err, &dup) {
			apierror.Write(w, apierror.Conflict(dup.Error()))
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user.Public())
}

// Delete handles permanent account deletion. Only the owner may delete
// an account; tokens already issued remain valid until expiry.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	target, err := h.service.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := auth.RequireOwner(target.ID, identity); err != nil {
		apierror.Write(w, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
