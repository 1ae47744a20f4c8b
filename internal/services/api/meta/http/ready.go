package http

import (
	"context"
	"net/http"

	"feedbackd/internal/modkit/httpkit"
	ptime "feedbackd/internal/platform/time"

	"golang.org/x/sync/errgroup"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(context.Context) error
}

// Probe names one dependency; a nil Target means it is not configured
type Probe struct {
	Name   string
	Target any
}

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusUnknown  = "unknown"
)

// ReadyCheck is the outcome of one probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"sqlite"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse rolls the checks up: any fail is fail, any unknown is degraded
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00.000Z"`
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok or degraded"
// @Failure 503 {object} ReadyResponse "a dependency failed"
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) httpkit.Response {
	ctx, cancel := context.WithTimeout(r.Context(), d.Timeout)
	defer cancel()

	checks := make([]ReadyCheck, len(d.Probes))
	var g errgroup.Group
	for i, p := range d.Probes {
		g.Go(func() error {
			checks[i] = check(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	res := ReadyResponse{Status: rollup(checks), Checks: checks, Now: ptime.Stamp(d.Clock.Now())}
	if res.Status == StatusFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: res}
	}
	return httpkit.OK(res)
}

func check(ctx context.Context, p Probe) ReadyCheck {
	c := ReadyCheck{Name: p.Name}
	if p.Target == nil {
		c.Status = StatusSkipped
		return c
	}
	pinger, ok := p.Target.(Pinger)
	if !ok {
		c.Status = StatusUnknown
		return c
	}
	if err := pinger.Ping(ctx); err != nil {
		c.Status, c.Error = StatusFail, err.Error()
		return c
	}
	c.Status = StatusOK
	return c
}

func rollup(checks []ReadyCheck) string {
	status := StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusFail:
			return StatusFail
		case StatusUnknown:
			status = StatusDegraded
		}
	}
	return status
}
