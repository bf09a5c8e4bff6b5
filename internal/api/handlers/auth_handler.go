package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/juliencrn/twitter-clone/internal/validate"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required,max=50"`
	Handle   string `json:"handle" validate:"required,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles new account registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierror.Write(w, apierror.Validation("Invalid request body"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		apierror.Write(w, err)
		return
	}

	user, err := h.service.Register(payload.Name, payload.Handle, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user.Public())
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierror.Write(w, apierror.Validation("Invalid request body"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		apierror.Write(w, err)
		return
	}

	token, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
