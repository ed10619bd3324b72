package muxhandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the header used when RequestIDConfig names none.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestIDConfig configures the RequestID middleware.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	HeaderName string

	// Generate returns a new ID. Defaults to a time-ordered UUID v7.
	Generate func() string

	// TrustIncoming reuses an ID supplied by the client.
	TrustIncoming bool
}

// RequestID returns a middleware that generates or propagates a request ID.
// The ID is set on the response header and in the request context.
func RequestID(cfg RequestIDConfig) func(http.Handler) http.Handler {
	header := cfg.HeaderName
	if header == "" {
		header = DefaultRequestIDHeader
	}

	generate := cfg.Generate
	if generate == nil {
		generate = newRequestID
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cfg.TrustIncoming {
				id = r.Header.Get(header)
			}
			if id == "" {
				id = generate()
			}

			if id != "" {
				w.Header().Set(header, id)
				r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// newRequestID returns a UUID v7, falling back to v4 if the clock source
// fails.
//
// See: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
