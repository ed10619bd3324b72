// Package muxhandlers provides net/http middleware for the chi server that
// hosts the documented API and its docs endpoints.
//
// # Request ID
//
// RequestID assigns each request an ID, echoes it in the response header and
// stores it in the request context for the access log:
//
//	r.Use(muxhandlers.RequestID(muxhandlers.RequestIDConfig{}))
//
// # Recovery
//
// Recovery turns handler panics into 500 responses and logs them with
// zerolog:
//
//	r.Use(muxhandlers.Recovery(logger))
//
// # Access Log
//
// AccessLog writes one zerolog event per request with method, path, status,
// size, latency and request ID:
//
//	r.Use(muxhandlers.AccessLog(muxhandlers.AccessLogConfig{
//	    Logger: logger,
//	    Skip: func(r *http.Request) bool { return r.URL.Path == "/metrics" },
//	}))
//
// # Basic Auth
//
// BasicAuth guards a route group, typically the docs endpoints, with HTTP
// Basic Authentication per RFC 7617:
//
//	mw, err := muxhandlers.BasicAuth(muxhandlers.BasicAuthConfig{
//	    Realm:       "API docs",
//	    Credentials: map[string]string{"admin": "secret"},
//	})
package muxhandlers
