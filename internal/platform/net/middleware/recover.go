package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"feedbackd/internal/platform/logger"
	pnet "feedbackd/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RecoverJSON turns a handler panic into the JSON 500 every other failure uses
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case http.ErrAbortHandler:
				panic(v)
			}

			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set(chimw.RequestIDHeader, id)
			}
			status, body := pnet.Panic()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
