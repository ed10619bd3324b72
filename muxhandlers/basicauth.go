package muxhandlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCredentials is returned when BasicAuthConfig carries no credentials.
var ErrNoCredentials = errors.New("basic auth: no credentials configured")

// BasicAuthConfig configures the BasicAuth middleware.
//
// See: https://www.rfc-editor.org/rfc/rfc7617
type BasicAuthConfig struct {
	// Realm is sent in the WWW-Authenticate header (default: "Restricted").
	Realm string

	// Credentials maps usernames to passwords.
	Credentials map[string]string
}

// BasicAuth returns a middleware that answers 401 Unauthorized unless the
// request carries valid Basic credentials.
func BasicAuth(cfg BasicAuthConfig) (func(http.Handler) http.Handler, error) {
	if len(cfg.Credentials) == 0 {
		return nil, ErrNoCredentials
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if ok {
				expected, exists := cfg.Credentials[username]
				// Compare even for unknown users so timing does not reveal them.
				match := constantTimeEqual(password, expected)
				if exists && match {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("WWW-Authenticate", challenge)
			w.WriteHeader(http.StatusUnauthorized)
		})
	}, nil
}

// constantTimeEqual hashes both values first so differing lengths take the
// same time to compare.
func constantTimeEqual(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
