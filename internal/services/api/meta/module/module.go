// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"feedbackd/internal/core/version"
	modkit "feedbackd/internal/modkit"
	"feedbackd/internal/modkit/httpkit"
	str "feedbackd/internal/platform/strings"
	metahttp "feedbackd/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module mounted under /meta by default
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{startedAt: time.Now()}
	m.Base = b.Base(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.ServiceName,
			StartedAt:   m.startedAt,
			Probes:      probes(deps),
			Timeout:     deps.Cfg.Prefix("META_").MayDuration("READY_TIMEOUT", 2*time.Second),
		})
	})
	return m
}

// probes lists the relational store under its driver name plus clickhouse
func probes(deps modkit.Deps) []metahttp.Probe {
	var sql, ch any
	if deps.SQL != nil {
		sql = deps.SQL
	}
	if deps.CH != nil {
		ch = deps.CH
	}
	return []metahttp.Probe{
		{Name: str.Or(deps.Driver, "sql"), Target: sql},
		{Name: "ch", Target: ch},
	}
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
