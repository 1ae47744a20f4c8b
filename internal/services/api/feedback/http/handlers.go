// Package http provides http transport for feedback submission
package http

import (
	stdhttp "net/http"
	"sync"

	"feedbackd/internal/core/normalize"
	"feedbackd/internal/modkit/httpkit"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/metrics"
	"feedbackd/internal/services/api/feedback/domain"
	svc "feedbackd/internal/services/api/feedback/service"
)

// maxBodyBytes caps the request body before decoding
const maxBodyBytes = 1 << 20

var rulesOnce sync.Once

func registerRules() {
	rulesOnce.Do(func() {
		if err := httpkit.RegisterNotBlank(normalize.Blank); err != nil {
			logger.Get().Panic().Err(err).Msg("register notblank")
		}
	})
}

// Register mounts the submit handler at / and as the router's fallback,
// so a POST to any unrouted path is accepted and every other verb gets a 405
func Register(r httpkit.Router, s svc.Service, m *metrics.Metrics) {
	registerRules()
	h := &handlers{svc: s, metrics: m}
	submit := httpkit.OnlyMethod(stdhttp.MethodPost, httpkit.Handle(h.submit))
	r.Handle("/", submit)
	r.NotFound(submit.ServeHTTP)
}

type handlers struct {
	svc     svc.Service
	metrics *metrics.Metrics
}

// swagger:route POST / Feedback feedbackSubmit
// @Summary Analyze and store one piece of feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Feedback"
// @Success 200 {object} domain.SubmitOutput "saved"
// @Failure 400 {object} errors.Wire "invalid payload"
// @Failure 405 {object} errors.Wire "method not allowed"
// @Failure 500 {object} errors.Wire "analysis or storage failure"
// @Router / [post]
func (h *handlers) submit(r *stdhttp.Request) httpkit.Response {
	in, err := httpkit.Bind[domain.SubmitInput](r, httpkit.JSONOptions{MaxBytes: maxBodyBytes})
	if err != nil {
		h.metrics.Submission(metrics.OutcomeInvalid)
		return httpkit.Error(domain.InvalidFeedback(err))
	}
	out, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}
