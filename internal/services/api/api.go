// Package api assembles the feedbackd HTTP surface from its modules
package api

import (
	"net/http"

	"feedbackd/internal/adapters/inference"
	"feedbackd/internal/modkit"
	"feedbackd/internal/modkit/httpkit"
	"feedbackd/internal/modkit/swaggerkit"
	"feedbackd/internal/platform/config"
	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/metrics"
	phttp "feedbackd/internal/platform/net/http"
	"feedbackd/internal/platform/store"

	feedbackmod "feedbackd/internal/services/api/feedback/module"
	metamod "feedbackd/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Store   *store.Store
	Logger  logger.Logger
	Metrics *metrics.Metrics
	Engine  inference.Engine

	// Stack tunes the shared middleware; Observe is filled from Metrics and
	// Logger from Logger when unset
	Stack httpkit.StackOptions

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router and returns the mounted modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	if opt.Stack.Observe == nil && opt.Metrics != nil {
		opt.Stack.Observe = opt.Metrics.HTTP
	}
	if opt.Stack.Logger == nil {
		opt.Stack.Logger = &opt.Logger
	}
	r.Use(httpkit.CommonStack(opt.Stack)...)

	// unrouted paths fall through to the feedback module's submit handler
	r.MethodNotAllowed(httpkit.Handle(func(*http.Request) httpkit.Response {
		return httpkit.Error(perr.New(perr.ErrorCodeMethodNotAllowed, httpkit.MsgMethodNotAllowed))
	}))

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	deps := modkit.FromStore(opt.Store, opt.Config, opt.Logger, opt.Metrics)
	mods := []modkit.Module{
		metamod.New(deps),
		feedbackmod.New(deps, modkit.WithPorts(feedbackmod.Ports{Engine: opt.Engine})),
	}
	for _, m := range mods {
		m.MountRoutes(r)
		opt.Logger.Debug().Str("module", m.Name()).Msg("module mounted")
	}
	return mods
}
