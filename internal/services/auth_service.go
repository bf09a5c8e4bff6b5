package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/models"
	"github.com/rs/zerolog/log"
)

// AuthServiceProvider defines the interface for registration and login.
type AuthServiceProvider interface {
	Register(name, handle, email, password string) (models.User, error)
	Login(identifier, password string) (string, error)
}

// AuthService orchestrates registration and login. It owns no state
// beyond its collaborators: the credential store, the password hasher
// and the token codec are all injected.
type AuthService struct {
	store  CredentialStore
	hasher auth.PasswordHasher
	codec  *auth.TokenCodec
}

// NewAuthService creates a new AuthService.
func NewAuthService(store CredentialStore, hasher auth.PasswordHasher, codec *auth.TokenCodec) *AuthService {
	return &AuthService{store: store, hasher: hasher, codec: codec}
}

// Verified against when the account does not exist, so that the
// not-found and wrong-password paths take comparable time. It can never
// match a real password.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Register creates a new account with a hashed password. The returned
// user still carries the hash; handlers must serialize the public
// projection only.
func (s *AuthService) Register(name, handle, email, password string) (models.User, error) {
	// Fail fast on an already-registered email. The UNIQUE constraint
	// in the store remains authoritative for concurrent registrations.
	_, err := s.store.FindByEmail(email)
	if err == nil {
		return models.User{}, apierror.Conflict("email already taken")
	}
	if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Handle:       handle,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.store.Create(user); err != nil {
		var dup *ErrDuplicateUser
		if errors.As(err, &dup) {
			return models.User{}, apierror.Conflict(dup.Error())
		}
		return models.User{}, err
	}

	return user, nil
}

// Login verifies credentials and issues a token. The account may be
// identified by email or handle. Unknown account and wrong password are
// deliberately indistinguishable: same error, and a dummy hash
// comparison keeps the not-found path from returning faster.
func (s *AuthService) Login(identifier, password string) (string, error) {
	credentialsNotValid := apierror.Unauthorized("Credentials not valid")

	var user models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.store.FindByEmail(identifier)
	} else {
		user, err = s.store.FindByHandle(identifier)
	}

	targetHash := user.PasswordHash
	exists := true
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return "", err
		}
		targetHash = dummyPasswordHash
		exists = false
	}

	valid, err := s.hasher.Verify(targetHash, password)
	if err != nil {
		// A stored hash that cannot be parsed means corruption. Log it,
		// answer with the same generic failure.
		if exists {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Stored password hash is unreadable")
		}
		return "", credentialsNotValid
	}

	if !exists || !valid {
		return "", credentialsNotValid
	}

	return s.codec.Issue(user.ID)
}
