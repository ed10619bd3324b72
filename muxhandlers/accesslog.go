package muxhandlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogConfig configures the AccessLog middleware.
type AccessLogConfig struct {
	Logger zerolog.Logger

	// Skip excludes requests from logging, e.g. metrics scrapes.
	Skip func(r *http.Request) bool
}

// AccessLog returns a middleware that logs one event per request. Server
// errors are logged at error level, client errors at warn, the rest at info.
func AccessLog(cfg AccessLogConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = cfg.Logger.Error()
			case status >= http.StatusBadRequest:
				event = cfg.Logger.Warn()
			default:
				event = cfg.Logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("request")
		})
	}
}
