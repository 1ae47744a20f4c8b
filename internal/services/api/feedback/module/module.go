// Package module wires feedback submission into the API using modkit
package module

import (
	"feedbackd/internal/adapters/inference"
	modkit "feedbackd/internal/modkit"
	"feedbackd/internal/modkit/httpkit"
	feedbackdom "feedbackd/internal/services/api/feedback/domain"
	feedbackhttp "feedbackd/internal/services/api/feedback/http"
	feedbackrepo "feedbackd/internal/services/api/feedback/repo"
	feedbacksvc "feedbackd/internal/services/api/feedback/service"
)

// Ports are the collaborators the host injects with modkit.WithPorts
type Ports struct {
	Engine inference.Engine
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base

	svc   feedbacksvc.Service
	ports any
}

// New constructs the feedback module; it mounts at the root unless WithPrefix says otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("feedback"), modkit.WithPrefix("")}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Engine == nil {
		panic("feedback module requires modkit.WithPorts(module.Ports{Engine: ...})")
	}
	repo, err := feedbackrepo.Dialects().Bind(deps.Driver, deps.SQL)
	if err != nil {
		panic(err)
	}

	cfg := deps.Cfg.Prefix("FEEDBACK_")
	svc := feedbacksvc.New(
		repo,
		feedbacksvc.NewAnalyzer(in.Engine, deps.Metrics),
		feedbacksvc.Options{
			MaxChars: cfg.MayPositiveInt("MAX_CHARS", feedbackdom.DefaultMaxChars),
			Metrics:  deps.Metrics,
			Events:   feedbackrepo.NewEvents(deps.CH, feedbackrepo.EventsTable(deps.Cfg)),
			Provider: in.Engine.Provider(),
			Model:    in.Engine.Model(),
		},
	)

	m := &Module{svc: svc, ports: adaptFeedbackPort{svc: svc}}
	m.Base = b.Base(func(r httpkit.Router) {
		feedbackhttp.Register(r, m.svc, deps.Metrics)
	})
	return m
}
