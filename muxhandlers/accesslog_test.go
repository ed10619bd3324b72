package muxhandlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLog(t *testing.T) {
	setup := func(buf *bytes.Buffer) http.Handler {
		r := chi.NewRouter()
		r.Use(RequestID(RequestIDConfig{Generate: func() string { return "req-42" }}))
		r.Use(AccessLog(AccessLogConfig{
			Logger: zerolog.New(buf),
			Skip:   func(r *http.Request) bool { return r.URL.Path == "/metrics" },
		}))
		r.Get("/pets", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("[]"))
		})
		r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		return r
	}

	tests := []struct {
		path      string
		wantLevel string
		wantCode  float64
		wantBytes float64
	}{
		{"/pets", "info", 200, 2},
		{"/missing", "warn", 404, 19},
		{"/boom", "error", 502, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			setup(&buf).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, tt.wantCode, entry["status"])
			assert.Equal(t, tt.wantBytes, entry["bytes"])
			assert.Equal(t, "req-42", entry["request_id"])
			assert.Contains(t, entry, "latency")
		})
	}

	t.Run("skipped requests", func(t *testing.T) {
		var buf bytes.Buffer
		w := httptest.NewRecorder()
		setup(&buf).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, buf.String())
	})
}
