package httpkit

import (
	"net/http"
	"time"

	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/net/middleware"
)

// StackOptions configures CommonStack
type StackOptions struct {
	// Timeout bounds each request; 0 means 30s
	Timeout time.Duration

	// SlowRequest marks access log lines slow above this; 0 disables
	SlowRequest time.Duration

	// Observe receives method, status and latency for every request (metrics)
	Observe func(method string, status int, elapsed time.Duration)

	// CORSOrigins turns CORS on for these origins; empty leaves it off so a
	// preflight OPTIONS gets the same 405 as any other non-POST
	CORSOrigins []string

	// Logger receives every line logged while serving a request; nil uses the root
	Logger *logger.Logger
}

// CommonStack returns the api middleware chain in mount order
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{middleware.WithLogger(o.Logger)}
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	stack = append(stack, middleware.Heartbeat("/ping"))
	return append(stack, middleware.Defaults(o.Timeout, middleware.AccessLogOptions{
		Slow:    o.SlowRequest,
		Observe: o.Observe,
	})...)
}
