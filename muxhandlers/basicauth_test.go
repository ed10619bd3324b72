package muxhandlers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicAuthHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestBasicAuth(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		_, err := BasicAuth(BasicAuthConfig{})
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	tests := []struct {
		name       string
		realm      string
		authHeader string
		wantCode   int
		wantRealm  string
	}{
		{"valid credentials", "", basicAuthHeader("admin", "secret"), http.StatusOK, ""},
		{"wrong password", "", basicAuthHeader("admin", "wrong"), http.StatusUnauthorized, `Basic realm="Restricted"`},
		{"unknown user", "", basicAuthHeader("root", "secret"), http.StatusUnauthorized, `Basic realm="Restricted"`},
		{"missing header", "API docs", "", http.StatusUnauthorized, `Basic realm="API docs"`},
		{"not basic", "", "Bearer token", http.StatusUnauthorized, `Basic realm="Restricted"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, err := BasicAuth(BasicAuthConfig{
				Realm:       tt.realm,
				Credentials: map[string]string{"admin": "secret"},
			})
			require.NoError(t, err)

			h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/docs", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantRealm, w.Header().Get("WWW-Authenticate"))
		})
	}
}
