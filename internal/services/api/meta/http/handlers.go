// Package http serves the /meta endpoints: liveness, readiness, version and uptime
package http

import (
	"net/http"
	"time"

	"feedbackd/internal/core/version"
	"feedbackd/internal/modkit/httpkit"
	ptime "feedbackd/internal/platform/time"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Probes      []Probe
	Timeout     time.Duration // whole readiness check, default 2s
	Clock       ptime.Clock
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Second
	}
	httpkit.Get(r, "/health", d.health)
	r.Get("/ready", httpkit.Handle(d.ready))
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", d.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"feedbackd-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00.000Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00.000Z"`
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"feedbackd-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00.000Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: d.ServiceName,
		Started: ptime.Stamp(d.StartedAt),
		Now:     ptime.Stamp(d.Clock.Now()),
	}, nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    d.ServiceName,
		Started: ptime.Stamp(d.StartedAt),
		Uptime:  int64(d.Clock.Now().Sub(d.StartedAt) / time.Second),
	}, nil
}
