package module

import (
	"context"

	feedbackdom "feedbackd/internal/services/api/feedback/domain"
	feedbacksvc "feedbackd/internal/services/api/feedback/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptFeedbackPort adapts the feedback service to the domain port interface
type adaptFeedbackPort struct{ svc feedbacksvc.Service }

// Submit implements the domain ServicePort interface
func (a adaptFeedbackPort) Submit(ctx context.Context, in feedbackdom.SubmitInput) (feedbackdom.SubmitOutput, error) {
	return a.svc.Submit(ctx, in)
}
