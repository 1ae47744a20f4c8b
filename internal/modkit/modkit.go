// Package modkit is the glue between api modules and the shared router
package modkit

import (
	"strings"

	phttp "feedbackd/internal/platform/net/http"
	str "feedbackd/internal/platform/strings"
)

// Module is one mountable slice of the api
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports exposes collaborators other modules may wire against; nil when there are none
	Ports() any
	Name() string
}

// Option adjusts a Plan
type Option func(*Plan)

// Plan is the resolved set of options a module is built from
type Plan struct {
	Name   string
	Prefix string
	Ports  any
}

func WithName(name string) Option { return func(p *Plan) { p.Name = name } }

// WithPrefix mounts the module under prefix; "" and "/" mount it at the root
func WithPrefix(prefix string) Option { return func(p *Plan) { p.Prefix = prefix } }

// WithPorts hands the module collaborators it does not construct itself, such as the inference engine
func WithPorts[T any](ports T) Option { return func(p *Plan) { p.Ports = ports } }

// Build applies opts in order, so callers can override a module's defaults by appending
func Build(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Base returns the embeddable part of a module that mounts routes under the plan's prefix
func (p Plan) Base(routes func(phttp.Router)) Base {
	return Base{name: p.Name, prefix: p.Prefix, routes: routes}
}

// Base gives an embedding module MountRoutes, Name and Prefix
type Base struct {
	name   string
	prefix string
	routes func(phttp.Router)
}

func (b *Base) MountRoutes(r phttp.Router) {
	mount := func(sub phttp.Router) {
		if b.routes != nil {
			b.routes(sub)
		}
	}
	if strings.Trim(b.prefix, "/") == "" {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(b.prefix), mount)
}

func (b *Base) Name() string { return str.Or(b.name, "module") }

func (b *Base) Prefix() string { return b.prefix }
