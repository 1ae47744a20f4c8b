package domain

import (
	"context"

	"feedbackd/internal/core/sentiment"
)

// ServicePort runs the whole pipeline for one submission
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput) (SubmitOutput, error)
}

// Analyzer turns feedback text into the model's loosely decoded answer
type Analyzer interface {
	Analyze(ctx context.Context, text string) (sentiment.Raw, error)
}
