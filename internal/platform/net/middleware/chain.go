package middleware

import (
	"net/http"
	"time"

	pstrings "feedbackd/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Func is a standard http middleware
type Func = func(http.Handler) http.Handler

// DefaultTimeout bounds a request when Defaults gets no timeout
const DefaultTimeout = 30 * time.Second

// CORSOptions is the part of go-chi/cors the api configures
type CORSOptions struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS allows browsers to POST JSON from AllowedOrigins ("*" when empty)
func CORS(o CORSOptions) Func {
	return cors.Handler(cors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", chimw.RequestIDHeader}),
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         o.MaxAge,
	})
}

// Heartbeat answers GET/HEAD path with 200 "." before any other middleware runs
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// Defaults is the per request chain, outermost first
// AccessLog wraps RecoverJSON so a recovered panic is still logged and observed as a 500
func Defaults(timeout time.Duration, access AccessLogOptions) []Func {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return []Func{
		chimw.RealIP,
		chimw.RequestID,
		RequestLogger,
		AccessLog(access),
		RecoverJSON,
		chimw.Timeout(timeout),
		chimw.NoCache,
	}
}
