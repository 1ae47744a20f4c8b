// Package middleware holds the http middleware chain shared by every api module
package middleware

import (
	"net/http"
	"time"

	"feedbackd/internal/platform/logger"
	pnet "feedbackd/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take at least this long; 0 never does
	Slow time.Duration
	// Observe is called once per finished request
	Observe func(method string, status int, elapsed time.Duration)
}

// WithLogger attaches l to every request context so the lines logged while serving
// it go to l instead of the root logger; nil leaves requests alone
func WithLogger(l *logger.Logger) Func {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logger.Attach(r.Context(), *l)))
		})
	}
}

// RequestLogger puts the request id on the logger context so every line logged
// while serving the request carries request_id
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), id)))
	})
}

// AccessLog writes one line per request once the handler returns
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if opt.Observe != nil {
				opt.Observe(r.Method, status, took)
			}

			l := logger.C(r.Context())
			ev := l.Info()
			if opt.Slow > 0 && took >= opt.Slow {
				ev = l.Warn().Bool("slow", true)
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				ev = ev.Str("route", rc.RoutePattern())
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
