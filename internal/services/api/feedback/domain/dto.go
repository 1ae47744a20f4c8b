// Package domain holds the feedback contracts shared by transport, service and repo
package domain

import (
	"feedbackd/internal/core/sentiment"
	perr "feedbackd/internal/platform/errors"
)

// Client facing messages
const (
	MsgInvalidFeedback = "Missing or invalid 'feedback' field"
	MsgAnalyzeFailed   = "Failed to analyze feedback"
	MsgSaveFailed      = "Failed to save feedback to database"
	MsgSaved           = "Feedback saved successfully"
)

// DefaultMaxChars bounds a submission in runes
const DefaultMaxChars = 4000

// SubmitInput is the POST / body
type SubmitInput struct {
	Feedback string `json:"feedback" validate:"notblank" example:"Love the new checkout flow!"`
}

// Data echoes what was stored
type Data struct {
	Feedback  string          `json:"feedback"`
	Sentiment sentiment.Label `json:"sentiment" example:"Positive"`
	Summary   string          `json:"summary" example:"User praised the new checkout flow."`
}

// SubmitOutput is the 200 body
type SubmitOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Data    Data   `json:"data"`
}

// Record is one persisted row
type Record struct {
	ID        int64
	Content   string
	Sentiment sentiment.Label
	Summary   string
	CreatedAt string
}

// InvalidFeedback is the single 400 every rejected payload maps to; cause is kept for logs only
func InvalidFeedback(cause error) error {
	var err error
	if cause == nil {
		err = perr.New(perr.ErrorCodeValidation, MsgInvalidFeedback)
	} else {
		err = perr.Wrap(cause, perr.ErrorCodeValidation, MsgInvalidFeedback)
	}
	return perr.WithOp(perr.WithField(err, "feedback"), "validate")
}
