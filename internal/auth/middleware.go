package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/rs/zerolog/log"
)

// Identity is the authenticated principal attached to a request. It is
// rebuilt from the token on every request and never persisted.
type Identity struct {
	ID string
}

type contextKey string

const identityKey = contextKey("identity")

// FromContext returns the Identity stored by the middleware, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// Middleware gates protected routes. It requires an
// "Authorization: Bearer <token>" header, validates the token and
// attaches the resulting Identity to the request context; any failure
// short-circuits with a 401 before the handler runs.
func Middleware(codec *TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				apierror.Write(w, apierror.Unauthorized("Unauthorized"))
				return
			}

			subject, err := codec.Validate(tokenStr)
			if err != nil {
				// The exact reason stays in the server log; the
				// client only learns "expired" vs a generic 401.
				log.Debug().Err(err).Msg("Rejected auth token")
				if errors.Is(err, ErrTokenExpired) {
					apierror.Write(w, apierror.Unauthorized("Token expired"))
					return
				}
				apierror.Write(w, apierror.Unauthorized("Unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{ID: subject})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Any other shape is rejected.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}
